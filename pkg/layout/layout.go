package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind selects how a field's bytes are interpreted.
type Kind int

const (
	// Uint decodes 1, 2, 4 or 8 bytes as a little-endian unsigned integer.
	Uint Kind = iota

	// Bytes copies the field verbatim.
	Bytes

	// Skip discards the field without materializing it. Used for boot
	// code, padding and reserved regions.
	Skip
)

// Field describes one fixed-width field of an on-disk structure. Structures
// are declared as ordered Field lists so every parser shares one decoder
// instead of hand-writing offset arithmetic per format.
type Field struct {
	Name  string
	Width int
	Kind  Kind
}

// ErrTruncated is returned when the input slice is shorter than the layout.
var ErrTruncated = errors.New("layout: truncated input")

// Size returns the total byte width of a field list.
func Size(fields []Field) int {
	total := 0
	for _, f := range fields {
		total += f.Width
	}
	return total
}

// Record holds the decoded fields of one structure.
type Record struct {
	uints  map[string]uint64
	blocks map[string][]byte
}

// Uint returns the value of a Uint field, or 0 if the name is unknown.
func (r *Record) Uint(name string) uint64 {
	return r.uints[name]
}

// Bytes returns the value of a Bytes field, or nil if the name is unknown.
func (r *Record) Bytes(name string) []byte {
	return r.blocks[name]
}

// Decode extracts one record from data according to the field list. It is a
// pure function of its inputs: data is never retained and Bytes fields are
// copied. Input shorter than Size(fields) fails with ErrTruncated.
func Decode(data []byte, fields []Field) (*Record, error) {
	need := Size(fields)
	if len(data) < need {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, len(data))
	}

	rec := &Record{
		uints:  make(map[string]uint64),
		blocks: make(map[string][]byte),
	}
	offset := 0
	for _, f := range fields {
		raw := data[offset : offset+f.Width]
		switch f.Kind {
		case Uint:
			v, err := decodeUint(raw)
			if err != nil {
				return nil, fmt.Errorf("layout: field %q: %w", f.Name, err)
			}
			rec.uints[f.Name] = v
		case Bytes:
			rec.blocks[f.Name] = append([]byte(nil), raw...)
		case Skip:
			// Not materialized.
		default:
			return nil, fmt.Errorf("layout: field %q: unknown kind %d", f.Name, f.Kind)
		}
		offset += f.Width
	}
	return rec, nil
}

func decodeUint(raw []byte) (uint64, error) {
	switch len(raw) {
	case 1:
		return uint64(raw[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(raw)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(raw)), nil
	case 8:
		return binary.LittleEndian.Uint64(raw), nil
	default:
		return 0, fmt.Errorf("unsupported integer width %d", len(raw))
	}
}
