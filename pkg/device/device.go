package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/disk-kit/pkg/consts"
)

// Source is a seekable, readable view of a disk image or block device. All
// parsers share one Source per device and begin with an explicit absolute
// seek, so no parser depends on the cursor position left by another.
type Source interface {
	io.ReadSeeker

	// LogicalBlockSize returns the device-reported logical sector size,
	// or the 512-byte default when the size cannot be queried.
	LogicalBlockSize() uint32
}

// ErrNotSeekable marks a source that cannot report its position. It is a
// configuration error raised before any parser runs.
var ErrNotSeekable = errors.New("device: source does not support seeking")

// Validate verifies that src can report its position. Parsers depend on
// absolute seeks, so a non-seekable source is rejected up front.
func Validate(src Source) error {
	if src == nil {
		return errors.New("device: nil source")
	}
	if _, err := src.Seek(0, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSeekable, err)
	}
	return nil
}

// ReadAt seeks to the absolute offset and fills buf completely. A short
// read surfaces as io.ErrUnexpectedEOF.
func ReadAt(src Source, offset int64, buf []byte) error {
	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	if _, err := io.ReadFull(src, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// FileSource reads from an opened disk image or block device file. The
// logical block size is queried from the kernel once at construction.
type FileSource struct {
	file      *os.File
	blockSize uint32
}

// NewFileSource wraps an open file. For block devices on Linux the logical
// sector size is taken from the kernel; regular files use the 512 default.
func NewFileSource(f *os.File) *FileSource {
	return &FileSource{
		file:      f,
		blockSize: queryBlockSize(f),
	}
}

func (s *FileSource) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

func (s *FileSource) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

func (s *FileSource) LogicalBlockSize() uint32 {
	return s.blockSize
}

// Name returns the path of the underlying file.
func (s *FileSource) Name() string {
	return s.file.Name()
}

func (s *FileSource) Close() error {
	return s.file.Close()
}

// BufferSource serves an in-memory disk image. Used heavily by tests and
// for decoding images already loaded elsewhere.
type BufferSource struct {
	reader    *bytes.Reader
	blockSize uint32
}

// NewBufferSource wraps data as a Source. A zero blockSize selects the
// 512-byte default.
func NewBufferSource(data []byte, blockSize uint32) *BufferSource {
	if blockSize == 0 {
		blockSize = consts.DEFAULT_SECTOR_SIZE
	}
	return &BufferSource{
		reader:    bytes.NewReader(data),
		blockSize: blockSize,
	}
}

func (s *BufferSource) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *BufferSource) Seek(offset int64, whence int) (int64, error) {
	return s.reader.Seek(offset, whence)
}

func (s *BufferSource) LogicalBlockSize() uint32 {
	return s.blockSize
}
