package platform

// Package platform contains OS integration used by the workflow and the shell:
// destination directory checks, free disk space, safe file names, the default
// Downloads directory, and revealing a finished file in the file manager.
