package download

// Package download implements the download-and-convert workflow: it validates
// the destination, resolves the URL through a Source, picks the highest
// resolution progressive mp4 stream, asks the user to confirm, writes the file
// and optionally hands it to a transcoder. Runner serializes invocations with
// a busy flag so that at most one workflow runs per process.
