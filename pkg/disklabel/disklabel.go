package disklabel

import (
	"errors"
	"fmt"
	"io"

	"github.com/bgrewell/disk-kit/pkg/consts"
	"github.com/bgrewell/disk-kit/pkg/device"
	"github.com/bgrewell/disk-kit/pkg/layout"
	"github.com/bgrewell/disk-kit/pkg/lookup"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
)

// On-disk layout of the BSD disklabel header, located one block past the
// start of the device (after any MBR). The magic appears twice, bracketing
// the drive geometry fields.
var headerFields = []layout.Field{
	{Name: "signature1", Width: 4, Kind: layout.Uint},
	{Name: "controller", Width: 4, Kind: layout.Bytes},
	{Name: "disk_type", Width: 16, Kind: layout.Bytes},
	{Name: "pack_id", Width: 16, Kind: layout.Bytes},
	{Name: "sector_byte", Width: 4, Kind: layout.Uint},
	{Name: "misc", Width: 88, Kind: layout.Bytes},
	{Name: "signature2", Width: 4, Kind: layout.Uint},
	{Name: "checksum", Width: 2, Kind: layout.Uint},
	{Name: "slices_total", Width: 2, Kind: layout.Uint},
	{Name: "boot_size", Width: 4, Kind: layout.Uint},
	{Name: "superblock_size", Width: 4, Kind: layout.Uint},
}

// On-disk layout of one 16-byte partition slice.
var sliceFields = []layout.Field{
	{Name: "sectors_total", Width: 4, Kind: layout.Uint},
	{Name: "first_sector", Width: 4, Kind: layout.Uint},
	{Name: "filesystem_size", Width: 4, Kind: layout.Uint},
	{Name: "type", Width: 1, Kind: layout.Uint},
	{Name: "fragments", Width: 1, Kind: layout.Uint},
	{Name: "cylinders", Width: 2, Kind: layout.Uint},
}

// Header is the decoded disklabel header.
type Header struct {
	Signature1 uint32  `json:"signature1"`
	Controller [4]byte `json:"controller"`

	// DiskType and PackID are NUL-trimmed identification strings.
	DiskType string `json:"disk_type"`
	PackID   string `json:"pack_id"`

	// SectorBytes is the sector size the label was written for.
	SectorBytes uint32 `json:"sector_byte"`

	// Misc carries the 88 bytes of drive geometry the decoder does not
	// interpret.
	Misc [88]byte `json:"-"`

	Signature2     uint32 `json:"signature2"`
	Checksum       uint16 `json:"checksum"`
	SlicesTotal    uint16 `json:"slices_total"`
	BootSize       uint32 `json:"boot_size"`
	SuperblockSize uint32 `json:"superblock_size"`

	// Size is the fixed header size (0x94). It is a structural constant
	// marking the start of the slice array, not read from the bytes.
	Size uint32 `json:"size"`
}

// Partition is one decoded partition slice.
type Partition struct {
	// Index is the 0-based slot in the slice array, presented as the
	// letter a..z in BSD notation.
	Index          int    `json:"index"`
	SectorsTotal   uint32 `json:"sectors_total"`
	FirstSector    uint32 `json:"first_sector"`
	FilesystemSize uint32 `json:"filesystem_size"`
	Type           uint8  `json:"type"`
	Fragments      uint8  `json:"fragments"`
	Cylinders      uint16 `json:"cylinders"`
	TypeLabel      string `json:"type_label"`
}

// Letter returns the BSD slice letter for the slot, or "?" past z.
func (p Partition) Letter() string {
	if p.Index < consts.DISKLABEL_MAX_SLICES {
		return string(rune('a' + p.Index))
	}
	return "?"
}

// Result is the outcome of probing a device for a BSD disklabel.
type Result = scheme.Result[*Header, Partition]

// Read probes src for a BSD disklabel one block past the start of the
// device. Either magic failing to match yields an absent result; a short
// slice array yields a corrupt one.
func Read(src device.Source, opts *option.OpenOptions) Result {
	if opts == nil {
		opts = &option.OpenOptions{}
	}
	log := opts.Log()
	blockSize := int64(opts.EffectiveSectorSize(src.LogicalBlockSize()))

	buf := make([]byte, layout.Size(headerFields))
	if err := device.ReadAt(src, blockSize, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Result{Status: scheme.StatusAbsent}
		}
		return Result{Status: scheme.StatusCorrupt, Err: fmt.Errorf("disklabel: read header: %w", err)}
	}

	rec, err := layout.Decode(buf, headerFields)
	if err != nil {
		return Result{Status: scheme.StatusCorrupt, Err: err}
	}
	if uint32(rec.Uint("signature1")) != consts.DISKLABEL_MAGIC ||
		uint32(rec.Uint("signature2")) != consts.DISKLABEL_MAGIC {
		log.Trace("no disklabel magic", "blockSize", blockSize)
		return Result{Status: scheme.StatusAbsent}
	}

	header := &Header{
		Signature1:     uint32(rec.Uint("signature1")),
		DiskType:       trimNul(rec.Bytes("disk_type")),
		PackID:         trimNul(rec.Bytes("pack_id")),
		SectorBytes:    uint32(rec.Uint("sector_byte")),
		Signature2:     uint32(rec.Uint("signature2")),
		Checksum:       uint16(rec.Uint("checksum")),
		SlicesTotal:    uint16(rec.Uint("slices_total")),
		BootSize:       uint32(rec.Uint("boot_size")),
		SuperblockSize: uint32(rec.Uint("superblock_size")),
		Size:           consts.DISKLABEL_HEADER_SIZE,
	}
	copy(header.Controller[:], rec.Bytes("controller"))
	copy(header.Misc[:], rec.Bytes("misc"))
	log.Debug("decoded disklabel header", "slices", header.SlicesTotal, "packID", header.PackID)

	var partitions []Partition
	sliceBuf := make([]byte, consts.DISKLABEL_SLICE_SIZE)
	for i := 0; i < int(header.SlicesTotal); i++ {
		offset := blockSize + int64(header.Size) + int64(i)*consts.DISKLABEL_SLICE_SIZE
		if err := device.ReadAt(src, offset, sliceBuf); err != nil {
			return Result{Status: scheme.StatusCorrupt,
				Err: fmt.Errorf("disklabel: short slice %d: %w", i, err)}
		}
		srec, err := layout.Decode(sliceBuf, sliceFields)
		if err != nil {
			return Result{Status: scheme.StatusCorrupt, Err: fmt.Errorf("disklabel: slice %d: %w", i, err)}
		}
		ptype := uint8(srec.Uint("type"))
		if ptype == 0 {
			continue
		}
		p := Partition{
			Index:          i,
			SectorsTotal:   uint32(srec.Uint("sectors_total")),
			FirstSector:    uint32(srec.Uint("first_sector")),
			FilesystemSize: uint32(srec.Uint("filesystem_size")),
			Type:           ptype,
			Fragments:      uint8(srec.Uint("fragments")),
			Cylinders:      uint16(srec.Uint("cylinders")),
			TypeLabel:      lookup.Label(opts.DisklabelTypeLabels, ptype),
		}
		log.Trace("decoded disklabel slice", "letter", p.Letter(), "type", p.TypeLabel)
		partitions = append(partitions, p)
	}

	return Result{Status: scheme.StatusPresent, Header: header, Partitions: partitions}
}

func trimNul(b []byte) string {
	for i, v := range b {
		if v == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
