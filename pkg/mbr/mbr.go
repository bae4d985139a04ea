package mbr

import (
	"errors"
	"fmt"
	"io"

	"github.com/bgrewell/disk-kit/pkg/consts"
	"github.com/bgrewell/disk-kit/pkg/device"
	"github.com/bgrewell/disk-kit/pkg/encoding"
	"github.com/bgrewell/disk-kit/pkg/layout"
	"github.com/bgrewell/disk-kit/pkg/logging"
	"github.com/bgrewell/disk-kit/pkg/lookup"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
)

// On-disk layout of the MBR sector.
// https://en.wikipedia.org/wiki/Master_boot_record#Sector_layout
var headerFields = []layout.Field{
	{Name: "boot_code", Width: 440, Kind: layout.Skip},
	{Name: "drive_signature", Width: 4, Kind: layout.Bytes},
	{Name: "reserved", Width: 2, Kind: layout.Skip},
	{Name: "partition1", Width: 16, Kind: layout.Bytes},
	{Name: "partition2", Width: 16, Kind: layout.Bytes},
	{Name: "partition3", Width: 16, Kind: layout.Bytes},
	{Name: "partition4", Width: 16, Kind: layout.Bytes},
	{Name: "signature", Width: 2, Kind: layout.Uint},
}

// On-disk layout of one 16-byte partition slot.
// https://en.wikipedia.org/wiki/Master_boot_record#Partition_table_entries
var partitionFields = []layout.Field{
	{Name: "status", Width: 1, Kind: layout.Uint},
	{Name: "chs_first", Width: 3, Kind: layout.Bytes},
	{Name: "type", Width: 1, Kind: layout.Uint},
	{Name: "chs_last", Width: 3, Kind: layout.Bytes},
	{Name: "lba", Width: 4, Kind: layout.Uint},
	{Name: "sectors", Width: 4, Kind: layout.Uint},
}

// On-disk layout of an EBR sector. The first descriptor is the logical
// partition (LBA relative to this EBR); the second points at the next EBR
// (LBA relative to the start of the extended partition).
// https://en.wikipedia.org/wiki/Extended_boot_record#Structures
var ebrFields = []layout.Field{
	{Name: "padding", Width: 446, Kind: layout.Skip},
	{Name: "partition", Width: 16, Kind: layout.Bytes},
	{Name: "next_ebr", Width: 16, Kind: layout.Bytes},
	{Name: "reserved", Width: 32, Kind: layout.Skip},
	{Name: "signature", Width: 2, Kind: layout.Uint},
}

// Header is the decoded MBR sector.
type Header struct {
	// DriveSignature is the 4-byte disk serial written by the OS.
	DriveSignature [4]byte `json:"drive_signature"`

	// Slots holds the four raw primary partition descriptors.
	Slots [consts.MBR_PARTITION_SLOTS][consts.MBR_PARTITION_SIZE]byte `json:"-"`

	// BootSignature closes the sector; always 0xAA55 on a valid MBR.
	BootSignature uint16 `json:"boot_signature"`
}

// Partition is one decoded partition entry, primary or logical. LBA values
// are kept exactly as stored on disk: logical partitions carry an offset
// relative to their EBR sector, not an absolute address.
type Partition struct {
	// Index is 1-based. Primary slots occupy 1-4; logical partitions
	// found in the EBR chain continue from 5 in chain order.
	Index     int     `json:"index"`
	Status    uint8   `json:"status"`
	Active    bool    `json:"active"`
	CHSFirst  [3]byte `json:"chs_first"`
	Type      uint8   `json:"type"`
	CHSLast   [3]byte `json:"chs_last"`
	LBA       uint32  `json:"lba"`
	Sectors   uint32  `json:"sectors"`
	TypeLabel string  `json:"type_label"`
}

// Logical reports whether the entry came from the EBR chain.
func (p Partition) Logical() bool {
	return p.Index >= consts.MBR_FIRST_LOGICAL_INDEX
}

// Extended reports whether the entry's type code marks an extended
// partition that anchors an EBR chain.
func (p Partition) Extended() bool {
	return isExtended(p.Type)
}

// Result is the outcome of probing a device for an MBR.
type Result = scheme.Result[*Header, Partition]

// ErrCycle is wrapped into the corrupt result when the EBR chain loops
// back to an already-visited sector.
var ErrCycle = errors.New("mbr: EBR cycle detected")

// The five documented type codes that mark an extended partition.
func isExtended(t uint8) bool {
	switch t {
	case 0x05, 0x0F, 0x15, 0x1F, 0x85:
		return true
	}
	return false
}

// Read probes src for an MBR. A missing boot signature yields an absent
// result; structural failures after a valid header (short reads, bad EBR
// signatures, chain cycles) yield a corrupt one.
func Read(src device.Source, opts *option.OpenOptions) Result {
	if opts == nil {
		opts = &option.OpenOptions{}
	}
	log := opts.Log()

	buf := make([]byte, consts.MBR_SECTOR_SIZE)
	if err := device.ReadAt(src, 0, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			// Too small to hold an MBR sector at all.
			return Result{Status: scheme.StatusAbsent}
		}
		return Result{Status: scheme.StatusCorrupt, Err: fmt.Errorf("mbr: read sector 0: %w", err)}
	}

	rec, err := layout.Decode(buf, headerFields)
	if err != nil {
		return Result{Status: scheme.StatusCorrupt, Err: err}
	}
	if uint16(rec.Uint("signature")) != consts.BOOT_SIGNATURE {
		log.Trace("no MBR boot signature", "found", fmt.Sprintf("0x%04X", rec.Uint("signature")))
		return Result{Status: scheme.StatusAbsent}
	}

	header := &Header{BootSignature: uint16(rec.Uint("signature"))}
	copy(header.DriveSignature[:], rec.Bytes("drive_signature"))
	for i := 0; i < consts.MBR_PARTITION_SLOTS; i++ {
		copy(header.Slots[i][:], rec.Bytes(fmt.Sprintf("partition%d", i+1)))
	}
	log.Debug("decoded MBR header", "driveSignature", fmt.Sprintf("%x", header.DriveSignature))

	var partitions []Partition
	for i := 0; i < consts.MBR_PARTITION_SLOTS; i++ {
		p, used, err := decodePartition(header.Slots[i][:], i+1, opts.MBRTypeLabels)
		if err != nil {
			return Result{Status: scheme.StatusCorrupt, Err: err}
		}
		if used {
			partitions = append(partitions, p)
		}
	}

	// The first extended entry anchors the EBR chain; logical partitions
	// are appended after the primary slots.
	for _, p := range partitions {
		if !p.Extended() {
			continue
		}
		log.Debug("found extended partition", "index", p.Index, "lba", p.LBA)
		logical, err := readChain(src, p.LBA, opts, log)
		if err != nil {
			return Result{Status: scheme.StatusCorrupt, Err: err}
		}
		partitions = append(partitions, logical...)
		break
	}

	return Result{Status: scheme.StatusPresent, Header: header, Partitions: partitions}
}

// decodePartition converts one raw 16-byte slot. Empty slots (type 0)
// report used=false and are skipped silently.
func decodePartition(raw []byte, index int, labels map[uint8]string) (Partition, bool, error) {
	rec, err := layout.Decode(raw, partitionFields)
	if err != nil {
		return Partition{}, false, fmt.Errorf("mbr: partition slot %d: %w", index, err)
	}
	ptype := uint8(rec.Uint("type"))
	if ptype == 0 {
		return Partition{}, false, nil
	}
	p := Partition{
		Index:     index,
		Status:    uint8(rec.Uint("status")),
		Active:    rec.Uint("status") >= 0x80,
		Type:      ptype,
		LBA:       uint32(rec.Uint("lba")),
		Sectors:   uint32(rec.Uint("sectors")),
		TypeLabel: lookup.Label(labels, ptype),
	}
	copy(p.CHSFirst[:], rec.Bytes("chs_first"))
	copy(p.CHSLast[:], rec.Bytes("chs_last"))
	return p, true, nil
}

// readChain walks the EBR linked list iteratively. Chain length is
// disk-controlled, so traversal keeps a visited set instead of recursing:
// a next pointer that lands on an already-visited sector is a cycle, not
// an excuse to loop forever.
func readChain(src device.Source, base uint32, opts *option.OpenOptions, log *logging.Logger) ([]Partition, error) {
	var partitions []Partition
	visited := make(map[uint32]bool)
	relative := uint32(0)
	index := consts.MBR_FIRST_LOGICAL_INDEX
	buf := make([]byte, consts.MBR_SECTOR_SIZE)

	for {
		lba := base + relative
		if visited[lba] {
			return nil, fmt.Errorf("%w at LBA %d", ErrCycle, lba)
		}
		visited[lba] = true

		// EBR sectors are addressed in fixed 512-byte units.
		if err := device.ReadAt(src, int64(lba)*consts.MBR_SECTOR_SIZE, buf); err != nil {
			return nil, fmt.Errorf("mbr: read EBR at LBA %d: %w", lba, err)
		}
		rec, err := layout.Decode(buf, ebrFields)
		if err != nil {
			return nil, fmt.Errorf("mbr: EBR at LBA %d: %w", lba, err)
		}
		if uint16(rec.Uint("signature")) != consts.BOOT_SIGNATURE {
			return nil, fmt.Errorf("mbr: bad EBR signature at LBA %d", lba)
		}

		p, used, err := decodePartition(rec.Bytes("partition"), index, opts.MBRTypeLabels)
		if err != nil {
			return nil, err
		}
		if used {
			log.Trace("decoded logical partition", "index", p.Index, "lba", lba)
			partitions = append(partitions, p)
			index++
		}

		// An all-zero next descriptor terminates the chain. Otherwise it
		// decodes like a partition slot whose LBA is the next EBR's offset
		// from the start of the extended partition.
		next := rec.Bytes("next_ebr")
		if encoding.AllZero(next) {
			return partitions, nil
		}
		nextRec, err := layout.Decode(next, partitionFields)
		if err != nil {
			return nil, fmt.Errorf("mbr: next-EBR descriptor at LBA %d: %w", lba, err)
		}
		relative = uint32(nextRec.Uint("lba"))
	}
}
