//go:build windows

package platform

import (
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sys/windows"
)

// FreeBytes returns the bytes available to the current user on the volume
// holding dir.
func FreeBytes(dir string) (uint64, error) {
	path, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid path", goerr.V("dir", dir))
	}

	var freeToCaller, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(path, &freeToCaller, &total, &totalFree); err != nil {
		return 0, goerr.Wrap(err, "GetDiskFreeSpaceEx failed", goerr.V("dir", dir))
	}
	return freeToCaller, nil
}
