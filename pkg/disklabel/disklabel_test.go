package disklabel

import (
	"testing"

	"github.com/bgrewell/disk-kit/internal/imagetest"
	"github.com/bgrewell/disk-kit/pkg/consts"
	"github.com/bgrewell/disk-kit/pkg/device"
	"github.com/bgrewell/disk-kit/pkg/lookup"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
	"github.com/stretchr/testify/require"
)

func testOptions() *option.OpenOptions {
	return &option.OpenOptions{DisklabelTypeLabels: lookup.DisklabelTypes}
}

func TestRead_Label(t *testing.T) {
	img := imagetest.New(16).
		DisklabelHeader(512, 3, "testpack").
		DisklabelSlice(512, 0, 8192, 64, 8192, 0x07).
		DisklabelSlice(512, 2, 1024, 8256, 0, 0x01)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusPresent, result.Status)
	require.NoError(t, result.Err)
	require.Equal(t, "testpack", result.Header.PackID)
	require.Equal(t, uint16(3), result.Header.SlicesTotal)
	require.Equal(t, uint32(512), result.Header.SectorBytes)

	// Slot 1 has type 0 and is skipped; slot 2 keeps its letter.
	require.Len(t, result.Partitions, 2)

	p := result.Partitions[0]
	require.Equal(t, 0, p.Index)
	require.Equal(t, "a", p.Letter())
	require.Equal(t, uint32(8192), p.SectorsTotal)
	require.Equal(t, uint32(64), p.FirstSector)
	require.Equal(t, "4.2BSD fast file system (FFS)", p.TypeLabel)

	p = result.Partitions[1]
	require.Equal(t, 2, p.Index)
	require.Equal(t, "c", p.Letter())
	require.Equal(t, "Swap", p.TypeLabel)
}

func TestRead_Absent(t *testing.T) {
	t.Run("no magic", func(t *testing.T) {
		result := Read(device.NewBufferSource(imagetest.New(16).Bytes(), 0), testOptions())
		require.Equal(t, scheme.StatusAbsent, result.Status)
		require.NoError(t, result.Err)
	})

	t.Run("only the first magic matches", func(t *testing.T) {
		img := imagetest.New(16)
		img.PutUint32(512, consts.DISKLABEL_MAGIC)
		result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
		require.Equal(t, scheme.StatusAbsent, result.Status)
	})

	t.Run("image too small for header", func(t *testing.T) {
		result := Read(device.NewBufferSource(make([]byte, 512), 0), testOptions())
		require.Equal(t, scheme.StatusAbsent, result.Status)
	})
}

func TestRead_ShortSliceArray(t *testing.T) {
	// Slice count runs past the end of the image.
	img := imagetest.New(2).DisklabelHeader(512, 26, "")

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusCorrupt, result.Status)
	require.ErrorContains(t, result.Err, "short slice")
}

func TestRead_UnknownTypeLabel(t *testing.T) {
	img := imagetest.New(16).
		DisklabelHeader(512, 1, "").
		DisklabelSlice(512, 0, 100, 0, 0, 0xF0)

	result := Read(device.NewBufferSource(img.Bytes(), 0), testOptions())
	require.Equal(t, scheme.StatusPresent, result.Status)
	require.Len(t, result.Partitions, 1)
	require.Equal(t, lookup.Unknown, result.Partitions[0].TypeLabel)
}

func TestPartition_Letter(t *testing.T) {
	require.Equal(t, "a", Partition{Index: 0}.Letter())
	require.Equal(t, "z", Partition{Index: 25}.Letter())
	require.Equal(t, "?", Partition{Index: 26}.Letter())
}
