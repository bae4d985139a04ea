package encoding

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

// GUIDString converts the 16-byte mixed-endian GUID layout used by GPT into
// its canonical uppercase hyphenated text form. On disk the first three
// GUID fields are little-endian while the final two are stored byte-for-byte.
func GUIDString(b []byte) (string, error) {
	if len(b) != 16 {
		return "", fmt.Errorf("encoding: GUID must be 16 bytes, got %d", len(b))
	}
	var be [16]byte
	be[0], be[1], be[2], be[3] = b[3], b[2], b[1], b[0]
	be[4], be[5] = b[5], b[4]
	be[6], be[7] = b[7], b[6]
	copy(be[8:], b[8:])
	id, err := uuid.FromBytes(be[:])
	if err != nil {
		return "", err
	}
	return strings.ToUpper(id.String()), nil
}

// GUIDBytes converts a canonical GUID string back into the 16-byte
// little-endian on-disk layout. It is the inverse of GUIDString.
func GUIDBytes(s string) ([16]byte, error) {
	var le [16]byte
	id, err := uuid.Parse(s)
	if err != nil {
		return le, err
	}
	b := id[:]
	le[0], le[1], le[2], le[3] = b[3], b[2], b[1], b[0]
	le[4], le[5] = b[5], b[4]
	le[6], le[7] = b[7], b[6]
	copy(le[8:], b[8:])
	return le, nil
}

// DecodeUTF16LE converts a fixed-size UTF-16 little-endian buffer into a Go
// string, stopping at the first NUL code unit. GPT name fields are not
// reliably NUL-padded, so anything after the terminator is discarded.
func DecodeUTF16LE(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i : i+2])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// EncodeUTF16LE converts a Go string into UTF-16 little-endian bytes padded
// with NULs to the given size. Names longer than the buffer are truncated
// on a code-unit boundary.
func EncodeUTF16LE(s string, size int) []byte {
	out := make([]byte, size)
	units := utf16.Encode([]rune(s))
	for i, u := range units {
		if 2*i+2 > size {
			break
		}
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out
}

// AllZero reports whether every byte in b is zero. All-zero descriptors act
// as sentinels in both the GPT entry array and the EBR chain.
func AllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
