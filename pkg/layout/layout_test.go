package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	fields := []Field{
		{Name: "status", Width: 1, Kind: Uint},
		{Name: "reserved", Width: 3, Kind: Skip},
		{Name: "tag", Width: 4, Kind: Bytes},
		{Name: "lba", Width: 4, Kind: Uint},
		{Name: "count", Width: 8, Kind: Uint},
	}
	require.Equal(t, 20, Size(fields))

	data := []byte{
		0x80,
		0xFF, 0xFF, 0xFF,
		'E', 'F', 'I', ' ',
		0x00, 0x08, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	rec, err := Decode(data, fields)
	require.NoError(t, err)
	require.Equal(t, uint64(0x80), rec.Uint("status"))
	require.Equal(t, []byte("EFI "), rec.Bytes("tag"))
	require.Equal(t, uint64(0x800), rec.Uint("lba"))
	require.Equal(t, uint64(1), rec.Uint("count"))
}

func TestDecodeSkippedFieldsNotMaterialized(t *testing.T) {
	fields := []Field{
		{Name: "boot_code", Width: 4, Kind: Skip},
		{Name: "sig", Width: 2, Kind: Uint},
	}
	rec, err := Decode([]byte{1, 2, 3, 4, 0x55, 0xAA}, fields)
	require.NoError(t, err)
	require.Nil(t, rec.Bytes("boot_code"))
	require.Equal(t, uint64(0xAA55), rec.Uint("sig"))
}

func TestDecodeTruncated(t *testing.T) {
	fields := []Field{
		{Name: "a", Width: 8, Kind: Uint},
	}
	_, err := Decode([]byte{1, 2, 3}, fields)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeExcessInputIgnored(t *testing.T) {
	fields := []Field{
		{Name: "a", Width: 2, Kind: Uint},
	}
	// Entries on disk may be wider than the declared layout; trailing
	// bytes carry no fields and are ignored.
	rec, err := Decode([]byte{0x34, 0x12, 0xDE, 0xAD}, fields)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1234), rec.Uint("a"))
}

func TestDecodeBadUintWidth(t *testing.T) {
	fields := []Field{
		{Name: "odd", Width: 3, Kind: Uint},
	}
	_, err := Decode([]byte{1, 2, 3}, fields)
	require.Error(t, err)
	require.Contains(t, err.Error(), "odd")
}

func TestDecodeCopiesBytes(t *testing.T) {
	fields := []Field{
		{Name: "b", Width: 2, Kind: Bytes},
	}
	data := []byte{7, 8}
	rec, err := Decode(data, fields)
	require.NoError(t, err)
	data[0] = 0
	require.Equal(t, []byte{7, 8}, rec.Bytes("b"))
}
