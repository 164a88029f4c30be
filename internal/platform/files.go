package platform

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
)

// File manager launchers per OS
const (
	revealDarwin  = "open"
	revealWindows = "explorer"
	revealLinux   = "xdg-open"
)

// LinuxFileManagers are tried in order when xdg-open is missing or fails
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// MaxFileNameLength caps the base name produced by SanitizeFileName
const MaxFileNameLength = 200

var unsafeFileNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// ErrNotDirectory is returned by ValidateDirectory for paths that exist but
// are not directories.
var ErrNotDirectory = errors.New("not a directory")

// ValidateDirectory checks that dir names an existing directory
func ValidateDirectory(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return os.ErrNotExist
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// SanitizeFileName turns a video title into a file name that is valid on
// every supported OS. An empty result is replaced by fallback.
func SanitizeFileName(title, fallback string) string {
	name := unsafeFileNameChars.ReplaceAllString(title, "")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, ". ")
	if len(name) > MaxFileNameLength {
		cut := MaxFileNameLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.Trim(name[:cut], ". ")
	}
	if name == "" {
		return fallback
	}
	return name
}

// ReplaceExt returns path with its extension replaced by ext (".mp3")
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get user home directory")
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// OpenFileInManager shows filePath in the system file manager, selected
// where the OS supports it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return goerr.Wrap(err, "file does not exist", goerr.V("path", filePath))
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return goerr.Wrap(err, "failed to get absolute path", goerr.V("path", filePath))
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command(revealDarwin, "-R", absPath).Run()
	case "windows":
		return exec.Command(revealWindows, "/select,", absPath).Run()
	case "linux", "freebsd", "openbsd", "netbsd":
		return revealInDirectory(filepath.Dir(absPath))
	}
	return goerr.New("unsupported operating system", goerr.V("os", runtime.GOOS))
}

// revealInDirectory opens dir; selecting a file is not standardized on
// freedesktop systems
func revealInDirectory(dir string) error {
	if err := exec.Command(revealLinux, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return goerr.New("no suitable file manager found", goerr.V("dir", dir))
}
