//go:build !windows

package platform

import (
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sys/unix"
)

// FreeBytes returns the bytes available to the current user on the
// filesystem holding dir.
func FreeBytes(dir string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, goerr.Wrap(err, "statfs failed", goerr.V("dir", dir))
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
