package mbr

import (
	"testing"

	"github.com/bgrewell/disk-kit/internal/imagetest"
	"github.com/bgrewell/disk-kit/pkg/device"
	"github.com/bgrewell/disk-kit/pkg/lookup"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
	"github.com/stretchr/testify/require"
)

func testOptions() *option.OpenOptions {
	return &option.OpenOptions{MBRTypeLabels: lookup.MBRTypes}
}

func TestRead_PrimaryPartitions(t *testing.T) {
	img := imagetest.New(64).
		BootSignature(0).
		MBRSlot(1, 0x80, 0x83, 2048, 4096).
		MBRSlot(3, 0x00, 0x07, 8192, 2048)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusPresent, result.Status)
	require.NoError(t, result.Err)
	require.Equal(t, uint16(0xAA55), result.Header.BootSignature)
	require.Len(t, result.Partitions, 2)

	p := result.Partitions[0]
	require.Equal(t, 1, p.Index)
	require.True(t, p.Active)
	require.Equal(t, uint8(0x83), p.Type)
	require.Equal(t, uint32(2048), p.LBA)
	require.Equal(t, uint32(4096), p.Sectors)
	require.Equal(t, "Linux", p.TypeLabel)
	require.False(t, p.Logical())

	// Empty slot 2 is skipped; slot 3 keeps its on-disk index.
	p = result.Partitions[1]
	require.Equal(t, 3, p.Index)
	require.False(t, p.Active)
	require.Equal(t, "NTFS", p.TypeLabel)
}

func TestRead_Absent(t *testing.T) {
	t.Run("no boot signature", func(t *testing.T) {
		img := imagetest.New(4)
		result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
		require.Equal(t, scheme.StatusAbsent, result.Status)
		require.NoError(t, result.Err)
		require.Nil(t, result.Header)
	})

	t.Run("image smaller than one sector", func(t *testing.T) {
		result := Read(device.NewBufferSource(make([]byte, 100), 0), testOptions())
		require.Equal(t, scheme.StatusAbsent, result.Status)
		require.NoError(t, result.Err)
	})
}

func TestRead_LogicalChain(t *testing.T) {
	// Extended partition at LBA 100 holding two logical partitions: the
	// first EBR at the extended base, the second 64 sectors further in.
	img := imagetest.New(256).
		BootSignature(0).
		MBRSlot(1, 0x80, 0x83, 2048, 4096).
		MBRSlot(2, 0x00, 0x05, 100, 128).
		EBR(100, 0x83, 1, 50, 64, 64).
		EBR(164, 0x07, 1, 63, 0, 0)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusPresent, result.Status)
	require.NoError(t, result.Err)
	require.Len(t, result.Partitions, 4)

	require.True(t, result.Partitions[1].Extended())

	first := result.Partitions[2]
	require.Equal(t, 5, first.Index)
	require.True(t, first.Logical())
	require.Equal(t, uint8(0x83), first.Type)
	// LBA stays relative to the EBR sector, exactly as stored.
	require.Equal(t, uint32(1), first.LBA)
	require.Equal(t, uint32(50), first.Sectors)

	second := result.Partitions[3]
	require.Equal(t, 6, second.Index)
	require.Equal(t, uint8(0x07), second.Type)
	require.Equal(t, uint32(63), second.Sectors)
}

func TestRead_EmptyExtendedPartition(t *testing.T) {
	// An EBR whose partition slot is unused and whose chain terminates
	// immediately yields no logical partitions.
	img := imagetest.New(256).
		BootSignature(0).
		MBRSlot(1, 0x00, 0x05, 100, 128).
		BootSignature(100)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusPresent, result.Status)
	require.Len(t, result.Partitions, 1)
	require.True(t, result.Partitions[0].Extended())
}

func TestRead_ChainCycle(t *testing.T) {
	// Second EBR points back at the extended base. Traversal must stop
	// with an error instead of looping.
	img := imagetest.New(256).
		BootSignature(0).
		MBRSlot(1, 0x00, 0x05, 100, 128).
		EBR(100, 0x83, 1, 50, 64, 64).
		EBR(164, 0x83, 1, 50, 0, 64)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusCorrupt, result.Status)
	require.ErrorIs(t, result.Err, ErrCycle)
}

func TestRead_BadEBRSignature(t *testing.T) {
	img := imagetest.New(256).
		BootSignature(0).
		MBRSlot(1, 0x00, 0x05, 100, 128)
	// LBA 100 never gets a boot signature.

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusCorrupt, result.Status)
	require.ErrorContains(t, result.Err, "bad EBR signature at LBA 100")
}

func TestRead_EBRBeyondImage(t *testing.T) {
	img := imagetest.New(4).
		BootSignature(0).
		MBRSlot(1, 0x00, 0x05, 1000, 128)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusCorrupt, result.Status)
	require.ErrorContains(t, result.Err, "read EBR at LBA 1000")
}

func TestPartition_Extended(t *testing.T) {
	for _, code := range []uint8{0x05, 0x0F, 0x15, 0x1F, 0x85} {
		require.True(t, Partition{Type: code}.Extended(), "type 0x%02X", code)
	}
	require.False(t, Partition{Type: 0x83}.Extended())
	require.False(t, Partition{Type: 0xEE}.Extended())
}
