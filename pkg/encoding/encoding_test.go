package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGUIDStringRoundTrip(t *testing.T) {
	// EFI System partition type GUID in its on-disk little-endian layout.
	le := []byte{
		0x28, 0x73, 0x2A, 0xC1,
		0x1F, 0xF8,
		0xD2, 0x11,
		0xBA, 0x4B,
		0x00, 0xA0, 0xC9, 0x3E, 0xC9, 0x3B,
	}

	s, err := GUIDString(le)
	require.NoError(t, err)
	require.Equal(t, "C12A7328-F81F-11D2-BA4B-00A0C93EC93B", s)

	back, err := GUIDBytes(s)
	require.NoError(t, err)
	require.Equal(t, le, back[:])
}

func TestGUIDStringBadLength(t *testing.T) {
	_, err := GUIDString([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDecodeUTF16LE(t *testing.T) {
	t.Run("terminates at first NUL", func(t *testing.T) {
		buf := EncodeUTF16LE("EFI System", 72)
		// Garbage after the terminator must be discarded.
		buf[40] = 0xDE
		buf[41] = 0xAD
		require.Equal(t, "EFI System", DecodeUTF16LE(buf))
	})

	t.Run("empty buffer", func(t *testing.T) {
		require.Equal(t, "", DecodeUTF16LE(make([]byte, 72)))
	})

	t.Run("odd length input", func(t *testing.T) {
		buf := append(EncodeUTF16LE("ok", 4), 0xFF)
		require.Equal(t, "ok", DecodeUTF16LE(buf))
	})

	t.Run("non-ascii name", func(t *testing.T) {
		buf := EncodeUTF16LE("данные", 72)
		require.Equal(t, "данные", DecodeUTF16LE(buf))
	})
}

func TestAllZero(t *testing.T) {
	require.True(t, AllZero(make([]byte, 16)))
	require.True(t, AllZero(nil))

	b := make([]byte, 16)
	b[15] = 1
	require.False(t, AllZero(b))
}
