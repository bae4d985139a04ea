//go:build !linux

package device

import (
	"os"

	"github.com/bgrewell/disk-kit/pkg/consts"
)

func queryBlockSize(_ *os.File) uint32 {
	return consts.DEFAULT_SECTOR_SIZE
}
