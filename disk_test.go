package disk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bgrewell/disk-kit/internal/imagetest"
	"github.com/bgrewell/disk-kit/pkg/device"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
	"github.com/stretchr/testify/require"
)

// hybridImage carries a protective MBR and a GPT, the layout every
// GPT-partitioned disk actually ships with.
func hybridImage() []byte {
	cfg := imagetest.GPTHeaderConfig{
		DiskGUID:   "A0A1A2A3-B0B1-C0C1-D0D1-E0E1E2E3E4E5",
		EntryCount: 128,
	}
	return imagetest.New(64).
		BootSignature(0).
		MBRSlot(1, 0x00, 0xEE, 1, 63).
		GPTHeader(cfg).
		GPTEntry(cfg, 1, "0FC63DAF-8483-4772-8E79-3D69D8477DE4",
			"11111111-2222-3333-4444-555555555555", 2048, 4095, 0, "rootfs").
		Bytes()
}

func TestNew_HybridDisk(t *testing.T) {
	d, err := New(device.NewBufferSource(hybridImage(), 0))
	require.NoError(t, err)

	insp := d.Inspection()
	require.NotNil(t, insp)

	// Protective MBR and GPT coexist; both probes report present.
	require.Equal(t, scheme.StatusPresent, insp.MBR.Status)
	require.Len(t, insp.MBR.Partitions, 1)
	require.Equal(t, uint8(0xEE), insp.MBR.Partitions[0].Type)

	require.Equal(t, scheme.StatusPresent, insp.GPT.Status)
	require.Len(t, insp.GPT.Partitions, 1)
	require.Equal(t, "rootfs", insp.GPT.Partitions[0].Name)

	require.Equal(t, scheme.StatusAbsent, insp.Disklabel.Status)
}

func TestNew_BlankImage(t *testing.T) {
	blank := make([]byte, 20*1024*1024)
	d, err := New(device.NewBufferSource(blank, 0))
	require.NoError(t, err)

	insp := d.Inspection()
	require.Equal(t, scheme.StatusAbsent, insp.MBR.Status)
	require.Equal(t, scheme.StatusAbsent, insp.GPT.Status)
	require.Equal(t, scheme.StatusAbsent, insp.Disklabel.Status)
	require.NoError(t, insp.MBR.Err)
	require.NoError(t, insp.GPT.Err)
	require.NoError(t, insp.Disklabel.Err)
}

func TestOpen_ImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hybrid.img")
	require.NoError(t, os.WriteFile(path, hybridImage(), 0o644))

	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()

	require.Equal(t, "hybrid.img", d.Name())
	require.Equal(t, scheme.StatusPresent, d.Inspection().GPT.Status)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.img"))
	require.Error(t, err)
}

func TestNew_ParseOnOpenDisabled(t *testing.T) {
	d, err := New(device.NewBufferSource(hybridImage(), 0),
		option.WithParseOnOpen(false))
	require.NoError(t, err)
	require.Nil(t, d.Inspection())

	insp, err := d.Inspect()
	require.NoError(t, err)
	require.Equal(t, scheme.StatusPresent, insp.MBR.Status)
	require.Same(t, insp, d.Inspection())
}

func TestNew_SchemeToggles(t *testing.T) {
	d, err := New(device.NewBufferSource(hybridImage(), 0),
		option.WithGPTEnabled(false),
		option.WithDisklabelEnabled(false))
	require.NoError(t, err)

	insp := d.Inspection()
	require.Equal(t, scheme.StatusPresent, insp.MBR.Status)
	// Disabled probes never run and stay at the absent zero value.
	require.Equal(t, scheme.StatusAbsent, insp.GPT.Status)
	require.Nil(t, insp.GPT.Header)
	require.Equal(t, scheme.StatusAbsent, insp.Disklabel.Status)
}

func TestNew_DisplayName(t *testing.T) {
	d, err := New(device.NewBufferSource(hybridImage(), 0),
		option.WithDisplayName("vm-root"))
	require.NoError(t, err)
	require.Equal(t, "vm-root", d.Name())
	require.Equal(t, "vm-root", d.Inspection().Name)
}
