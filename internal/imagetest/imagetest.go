// Package imagetest assembles synthetic disk images for parser tests.
// Builders write structures at their on-disk offsets so tests exercise the
// same byte layouts real devices carry.
package imagetest

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/bgrewell/disk-kit/pkg/consts"
	"github.com/bgrewell/disk-kit/pkg/encoding"
)

// Builder holds an in-memory disk image under construction.
type Builder struct {
	data []byte
}

// New allocates a zeroed image of the given number of 512-byte sectors.
func New(sectors int) *Builder {
	return &Builder{data: make([]byte, sectors*consts.DEFAULT_SECTOR_SIZE)}
}

// NewSized allocates a zeroed image of exactly size bytes.
func NewSized(size int) *Builder {
	return &Builder{data: make([]byte, size)}
}

// Bytes returns the backing image.
func (b *Builder) Bytes() []byte {
	return b.data
}

// WriteAt copies p into the image at the absolute byte offset.
func (b *Builder) WriteAt(offset int, p []byte) *Builder {
	copy(b.data[offset:], p)
	return b
}

// PutUint16 writes v little-endian at the absolute byte offset.
func (b *Builder) PutUint16(offset int, v uint16) *Builder {
	binary.LittleEndian.PutUint16(b.data[offset:], v)
	return b
}

// PutUint32 writes v little-endian at the absolute byte offset.
func (b *Builder) PutUint32(offset int, v uint32) *Builder {
	binary.LittleEndian.PutUint32(b.data[offset:], v)
	return b
}

// PutUint64 writes v little-endian at the absolute byte offset.
func (b *Builder) PutUint64(offset int, v uint64) *Builder {
	binary.LittleEndian.PutUint64(b.data[offset:], v)
	return b
}

// BootSignature stamps 0x55 0xAA at the end of the given 512-byte sector.
func (b *Builder) BootSignature(sector int) *Builder {
	off := sector*consts.MBR_SECTOR_SIZE + consts.MBR_SECTOR_SIZE - 2
	b.data[off] = 0x55
	b.data[off+1] = 0xAA
	return b
}

// MBREntry writes one 16-byte partition descriptor at the absolute byte
// offset.
func (b *Builder) MBREntry(offset int, status, ptype uint8, lba, sectors uint32) *Builder {
	b.data[offset] = status
	b.data[offset+4] = ptype
	binary.LittleEndian.PutUint32(b.data[offset+8:], lba)
	binary.LittleEndian.PutUint32(b.data[offset+12:], sectors)
	return b
}

// MBRSlot fills primary slot 1..4 in the MBR sector.
func (b *Builder) MBRSlot(slot int, status, ptype uint8, lba, sectors uint32) *Builder {
	return b.MBREntry(446+(slot-1)*consts.MBR_PARTITION_SIZE, status, ptype, lba, sectors)
}

// EBR writes an EBR sector at the given absolute LBA: the logical
// partition descriptor, the next-EBR descriptor (nextRel of zero leaves the
// chain terminator in place) and the boot signature.
func (b *Builder) EBR(lba uint32, ptype uint8, partRel, partSectors, nextRel, nextSectors uint32) *Builder {
	base := int(lba) * consts.MBR_SECTOR_SIZE
	b.MBREntry(base+446, 0x00, ptype, partRel, partSectors)
	if nextRel != 0 || nextSectors != 0 {
		b.MBREntry(base+462, 0x00, 0x05, nextRel, nextSectors)
	}
	return b.BootSignature(int(lba))
}

// GPTHeaderConfig carries the fields tests vary; the rest default to the
// values a freshly written table would have.
type GPTHeaderConfig struct {
	RevisionMajor uint16
	RevisionMinor uint16
	HeaderSize    uint32
	DiskGUID      string
	EntryStart    uint64
	EntryCount    uint32
	EntrySize     uint32
	BlockSize     int
}

// GPTHeader writes a GPT header at LBA 1 and returns the builder. Header
// and entry-array CRCs are left zero; Checksum recomputes them afterwards.
func (b *Builder) GPTHeader(cfg GPTHeaderConfig) *Builder {
	if cfg.BlockSize == 0 {
		cfg.BlockSize = consts.DEFAULT_SECTOR_SIZE
	}
	if cfg.RevisionMajor == 0 && cfg.RevisionMinor == 0 {
		cfg.RevisionMajor = 1
	}
	if cfg.HeaderSize == 0 {
		cfg.HeaderSize = consts.GPT_MIN_HEADER_SIZE
	}
	if cfg.EntryStart == 0 {
		cfg.EntryStart = 2
	}
	if cfg.EntrySize == 0 {
		cfg.EntrySize = consts.GPT_ENTRY_SIZE
	}

	base := cfg.BlockSize
	b.WriteAt(base, []byte(consts.GPT_SIGNATURE))
	b.PutUint16(base+8, cfg.RevisionMinor)
	b.PutUint16(base+10, cfg.RevisionMajor)
	b.PutUint32(base+12, cfg.HeaderSize)
	b.PutUint64(base+24, 1)                       // current LBA
	b.PutUint64(base+32, 0)                       // backup LBA, unused in tests
	b.PutUint64(base+40, cfg.EntryStart+32)       // first usable LBA
	b.PutUint64(base+48, uint64(len(b.data))/512) // last usable LBA
	if cfg.DiskGUID != "" {
		guid, err := encoding.GUIDBytes(cfg.DiskGUID)
		if err != nil {
			panic(err)
		}
		b.WriteAt(base+56, guid[:])
	}
	b.PutUint64(base+72, cfg.EntryStart)
	b.PutUint32(base+80, cfg.EntryCount)
	b.PutUint32(base+84, cfg.EntrySize)
	return b
}

// GPTEntry writes one partition entry into the array. index is 1-based to
// match decoder output; the array location is taken from the config.
func (b *Builder) GPTEntry(cfg GPTHeaderConfig, index int, typeGUID, uniqueGUID string, firstLBA, lastLBA, flags uint64, name string) *Builder {
	if cfg.BlockSize == 0 {
		cfg.BlockSize = consts.DEFAULT_SECTOR_SIZE
	}
	if cfg.EntryStart == 0 {
		cfg.EntryStart = 2
	}
	if cfg.EntrySize == 0 {
		cfg.EntrySize = consts.GPT_ENTRY_SIZE
	}
	base := int(cfg.EntryStart)*cfg.BlockSize + (index-1)*int(cfg.EntrySize)

	tg, err := encoding.GUIDBytes(typeGUID)
	if err != nil {
		panic(err)
	}
	ug, err := encoding.GUIDBytes(uniqueGUID)
	if err != nil {
		panic(err)
	}
	b.WriteAt(base, tg[:])
	b.WriteAt(base+16, ug[:])
	b.PutUint64(base+32, firstLBA)
	b.PutUint64(base+40, lastLBA)
	b.PutUint64(base+48, flags)
	b.WriteAt(base+56, encoding.EncodeUTF16LE(name, 72))
	return b
}

// Checksum fills in the GPT header and entry-array CRC32 fields from the
// current image contents.
func (b *Builder) Checksum(cfg GPTHeaderConfig) *Builder {
	if cfg.BlockSize == 0 {
		cfg.BlockSize = consts.DEFAULT_SECTOR_SIZE
	}
	if cfg.HeaderSize == 0 {
		cfg.HeaderSize = consts.GPT_MIN_HEADER_SIZE
	}
	if cfg.EntryStart == 0 {
		cfg.EntryStart = 2
	}
	if cfg.EntrySize == 0 {
		cfg.EntrySize = consts.GPT_ENTRY_SIZE
	}
	base := cfg.BlockSize

	arrayStart := int(cfg.EntryStart) * cfg.BlockSize
	arrayLen := int(cfg.EntryCount) * int(cfg.EntrySize)
	b.PutUint32(base+88, crc32.ChecksumIEEE(b.data[arrayStart:arrayStart+arrayLen]))

	b.PutUint32(base+16, 0)
	b.PutUint32(base+16, crc32.ChecksumIEEE(b.data[base:base+int(cfg.HeaderSize)]))
	return b
}

// DisklabelHeader writes the disklabel magic pair and slice count one
// block past the start of the image.
func (b *Builder) DisklabelHeader(blockSize int, slices uint16, packID string) *Builder {
	if blockSize == 0 {
		blockSize = consts.DEFAULT_SECTOR_SIZE
	}
	b.PutUint32(blockSize, consts.DISKLABEL_MAGIC)
	b.WriteAt(blockSize+24, []byte(packID))
	b.PutUint32(blockSize+40, uint32(blockSize))
	b.PutUint32(blockSize+132, consts.DISKLABEL_MAGIC)
	b.PutUint16(blockSize+138, slices)
	return b
}

// DisklabelSlice writes one 16-byte slice record into the array.
func (b *Builder) DisklabelSlice(blockSize, index int, sectors, first, fsSize uint32, ptype uint8) *Builder {
	if blockSize == 0 {
		blockSize = consts.DEFAULT_SECTOR_SIZE
	}
	base := blockSize + consts.DISKLABEL_HEADER_SIZE + index*consts.DISKLABEL_SLICE_SIZE
	b.PutUint32(base, sectors)
	b.PutUint32(base+4, first)
	b.PutUint32(base+8, fsSize)
	b.data[base+12] = ptype
	return b
}
