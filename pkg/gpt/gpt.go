package gpt

import (
	"errors"
	"fmt"
	"hash/crc32"
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

// On-disk layout of the GPT header at LBA 1.
// https://en.wikipedia.org/wiki/GUID_Partition_Table#Partition_table_header_(LBA_1)
var headerFields = []layout.Field{
	{Name: "signature", Width: 8, Kind: layout.Bytes},
	{Name: "revision_minor", Width: 2, Kind: layout.Uint},
	{Name: "revision_major", Width: 2, Kind: layout.Uint},
	{Name: "header_size", Width: 4, Kind: layout.Uint},
	{Name: "crc32", Width: 4, Kind: layout.Uint},
	{Name: "reserved", Width: 4, Kind: layout.Skip},
	{Name: "current_lba", Width: 8, Kind: layout.Uint},
	{Name: "backup_lba", Width: 8, Kind: layout.Uint},
	{Name: "first_usable_lba", Width: 8, Kind: layout.Uint},
	{Name: "last_usable_lba", Width: 8, Kind: layout.Uint},
	{Name: "disk_guid", Width: 16, Kind: layout.Bytes},
	{Name: "part_entry_start_lba", Width: 8, Kind: layout.Uint},
	{Name: "num_part_entries", Width: 4, Kind: layout.Uint},
	{Name: "part_entry_size", Width: 4, Kind: layout.Uint},
	{Name: "crc32_part_array", Width: 4, Kind: layout.Uint},
}

// On-disk layout of one partition entry. Headers may declare a larger
// stride than the 128-byte structural minimum; the excess is ignored.
// https://en.wikipedia.org/wiki/GUID_Partition_Table#Partition_entries
var entryFields = []layout.Field{
	{Name: "type_guid", Width: 16, Kind: layout.Bytes},
	{Name: "unique_guid", Width: 16, Kind: layout.Bytes},
	{Name: "first_lba", Width: 8, Kind: layout.Uint},
	{Name: "last_lba", Width: 8, Kind: layout.Uint},
	{Name: "flags", Width: 8, Kind: layout.Uint},
	{Name: "name", Width: 72, Kind: layout.Bytes},
}

// Header is the decoded GPT header. GUIDs are converted to their canonical
// uppercase hyphenated form.
type Header struct {
	Signature      string `json:"signature"`
	RevisionMinor  uint16 `json:"revision_minor"`
	RevisionMajor  uint16 `json:"revision_major"`
	HeaderSize     uint32 `json:"header_size"`
	CRC32          uint32 `json:"crc32"`
	CurrentLBA     uint64 `json:"current_lba"`
	BackupLBA      uint64 `json:"backup_lba"`
	FirstUsableLBA uint64 `json:"first_usable_lba"`
	LastUsableLBA  uint64 `json:"last_usable_lba"`
	DiskGUID       string `json:"disk_guid"`
	EntryStartLBA  uint64 `json:"part_entry_start_lba"`
	EntryCount     uint32 `json:"num_part_entries"`
	EntrySize      uint32 `json:"part_entry_size"`
	EntryArrayCRC  uint32 `json:"crc32_part_array"`
}

// Revision returns the header revision as major.minor.
func (h *Header) Revision() float64 {
	return float64(h.RevisionMajor) + float64(h.RevisionMinor)/10
}

// Partition is one decoded, in-use partition entry.
type Partition struct {
	// Index is the 1-based position in the on-disk entry array. Unused
	// slots keep their positions, so indices may be sparse.
	Index      int    `json:"index"`
	TypeGUID   string `json:"type_guid"`
	UniqueGUID string `json:"unique_guid"`
	FirstLBA   uint64 `json:"first_lba"`
	LastLBA    uint64 `json:"last_lba"`
	Flags      uint64 `json:"flags"`
	Name       string `json:"name"`
	TypeLabel  string `json:"type_label"`
}

// Sectors returns the partition size in sectors.
func (p Partition) Sectors() uint64 {
	return p.LastLBA - p.FirstLBA
}

// Result is the outcome of probing a device for a GPT.
type Result = scheme.Result[*Header, Partition]

// Read probes src for a GPT, skipping the protective MBR sector. A missing
// "EFI PART" signature yields an absent result; a bad revision, an
// undersized header, a short entry array or a checksum mismatch (when
// verification is enabled) yield a corrupt one.
func Read(src device.Source, opts *option.OpenOptions) Result {
	if opts == nil {
		opts = &option.OpenOptions{}
	}
	log := opts.Log()
	blockSize := int64(opts.EffectiveSectorSize(src.LogicalBlockSize()))

	buf := make([]byte, layout.Size(headerFields))
	if err := device.ReadAt(src, consts.GPT_HEADER_LBA*blockSize, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Result{Status: scheme.StatusAbsent}
		}
		return Result{Status: scheme.StatusCorrupt, Err: fmt.Errorf("gpt: read header: %w", err)}
	}

	rec, err := layout.Decode(buf, headerFields)
	if err != nil {
		return Result{Status: scheme.StatusCorrupt, Err: err}
	}
	if string(rec.Bytes("signature")) != consts.GPT_SIGNATURE {
		log.Trace("no GPT signature at header LBA", "blockSize", blockSize)
		return Result{Status: scheme.StatusAbsent}
	}

	header := &Header{
		Signature:      string(rec.Bytes("signature")),
		RevisionMinor:  uint16(rec.Uint("revision_minor")),
		RevisionMajor:  uint16(rec.Uint("revision_major")),
		HeaderSize:     uint32(rec.Uint("header_size")),
		CRC32:          uint32(rec.Uint("crc32")),
		CurrentLBA:     rec.Uint("current_lba"),
		BackupLBA:      rec.Uint("backup_lba"),
		FirstUsableLBA: rec.Uint("first_usable_lba"),
		LastUsableLBA:  rec.Uint("last_usable_lba"),
		EntryStartLBA:  rec.Uint("part_entry_start_lba"),
		EntryCount:     uint32(rec.Uint("num_part_entries")),
		EntrySize:      uint32(rec.Uint("part_entry_size")),
		EntryArrayCRC:  uint32(rec.Uint("crc32_part_array")),
	}
	if header.Revision() < 1.0 {
		return Result{Status: scheme.StatusCorrupt,
			Err: fmt.Errorf("gpt: bad revision %d.%d", header.RevisionMajor, header.RevisionMinor)}
	}
	if header.HeaderSize < consts.GPT_MIN_HEADER_SIZE {
		return Result{Status: scheme.StatusCorrupt,
			Err: fmt.Errorf("gpt: bad header size %d", header.HeaderSize)}
	}

	header.DiskGUID, err = encoding.GUIDString(rec.Bytes("disk_guid"))
	if err != nil {
		return Result{Status: scheme.StatusCorrupt, Err: fmt.Errorf("gpt: disk GUID: %w", err)}
	}
	log.Debug("decoded GPT header",
		"diskGUID", header.DiskGUID,
		"entries", header.EntryCount,
		"entrySize", header.EntrySize)

	if opts.VerifyChecksums {
		if err := verifyHeaderCRC(src, consts.GPT_HEADER_LBA*blockSize, header); err != nil {
			return Result{Status: scheme.StatusCorrupt, Err: err}
		}
	}

	partitions, err := readEntries(src, header, blockSize, opts, log)
	if err != nil {
		return Result{Status: scheme.StatusCorrupt, Err: err}
	}

	return Result{Status: scheme.StatusPresent, Header: header, Partitions: partitions}
}

// verifyHeaderCRC recomputes the header CRC32 with the checksum field
// zeroed, over exactly HeaderSize bytes.
func verifyHeaderCRC(src device.Source, offset int64, header *Header) error {
	raw := make([]byte, header.HeaderSize)
	if err := device.ReadAt(src, offset, raw); err != nil {
		return fmt.Errorf("gpt: reread header for checksum: %w", err)
	}
	for i := 16; i < 20; i++ {
		raw[i] = 0
	}
	if sum := crc32.ChecksumIEEE(raw); sum != header.CRC32 {
		return fmt.Errorf("gpt: header CRC32 mismatch: calculated 0x%08X, stored 0x%08X", sum, header.CRC32)
	}
	return nil
}

// readEntries scans the whole declared entry array in disk order. Unused
// slots (all-zero type GUID) keep their index but produce no partition;
// later slots may still be in use.
func readEntries(src device.Source, header *Header, blockSize int64, opts *option.OpenOptions, log *logging.Logger) ([]Partition, error) {
	if header.EntrySize < uint32(layout.Size(entryFields)) {
		return nil, fmt.Errorf("gpt: entry size %d below structural minimum %d",
			header.EntrySize, layout.Size(entryFields))
	}
	if _, err := src.Seek(int64(header.EntryStartLBA)*blockSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("gpt: seek entry array: %w", err)
	}

	var partitions []Partition
	arrayCRC := uint32(0)
	buf := make([]byte, header.EntrySize)
	for i := uint32(0); i < header.EntryCount; i++ {
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, fmt.Errorf("gpt: short partition entry #%d: %w", i+1, err)
		}
		arrayCRC = crc32.Update(arrayCRC, crc32.IEEETable, buf)

		rec, err := layout.Decode(buf, entryFields)
		if err != nil {
			return nil, fmt.Errorf("gpt: partition entry #%d: %w", i+1, err)
		}
		if encoding.AllZero(rec.Bytes("type_guid")) {
			continue
		}

		typeGUID, err := encoding.GUIDString(rec.Bytes("type_guid"))
		if err != nil {
			return nil, fmt.Errorf("gpt: partition entry #%d type GUID: %w", i+1, err)
		}
		uniqueGUID, err := encoding.GUIDString(rec.Bytes("unique_guid"))
		if err != nil {
			return nil, fmt.Errorf("gpt: partition entry #%d unique GUID: %w", i+1, err)
		}

		p := Partition{
			Index:      int(i) + 1,
			TypeGUID:   typeGUID,
			UniqueGUID: uniqueGUID,
			FirstLBA:   rec.Uint("first_lba"),
			LastLBA:    rec.Uint("last_lba"),
			Flags:      rec.Uint("flags"),
			Name:       encoding.DecodeUTF16LE(rec.Bytes("name")),
			TypeLabel:  lookup.Label(opts.GPTTypeLabels, typeGUID),
		}
		log.Trace("decoded GPT partition", "index", p.Index, "type", p.TypeLabel, "name", p.Name)
		partitions = append(partitions, p)
	}

	if opts.VerifyChecksums && arrayCRC != header.EntryArrayCRC {
		return nil, fmt.Errorf("gpt: entry array CRC32 mismatch: calculated 0x%08X, stored 0x%08X",
			arrayCRC, header.EntryArrayCRC)
	}
	return partitions, nil
}
