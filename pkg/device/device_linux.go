//go:build linux

package device

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/bgrewell/disk-kit/pkg/consts"
)

// queryBlockSize asks the kernel for the logical sector size (BLKSSZGET).
// Regular files and failed ioctls fall back to the 512-byte default.
func queryBlockSize(f *os.File) uint32 {
	size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKSSZGET)
	if err != nil || size <= 0 {
		return consts.DEFAULT_SECTOR_SIZE
	}
	return uint32(size)
}
