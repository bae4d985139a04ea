package lookup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	require.Equal(t, "Linux", Label(MBRTypes, uint8(0x83)))
	require.Equal(t, Unknown, Label(MBRTypes, uint8(0x99)))

	require.Equal(t, "EFI System partition", Label(GPTTypes, "C12A7328-F81F-11D2-BA4B-00A0C93EC93B"))
	require.Equal(t, Unknown, Label(GPTTypes, "00000000-0000-0000-0000-000000000001"))

	require.Equal(t, "4.2BSD fast file system (FFS)", Label(DisklabelTypes, uint8(0x07)))
	require.Equal(t, Unknown, Label(DisklabelTypes, uint8(0xFE)))

	// A nil table resolves everything to Unknown rather than failing.
	require.Equal(t, Unknown, Label[uint8](nil, 0x83))
}
