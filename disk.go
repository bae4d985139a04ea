package disk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgrewell/disk-kit/pkg/device"
	"github.com/bgrewell/disk-kit/pkg/disklabel"
	"github.com/bgrewell/disk-kit/pkg/gpt"
	"github.com/bgrewell/disk-kit/pkg/logging"
	"github.com/bgrewell/disk-kit/pkg/lookup"
	"github.com/bgrewell/disk-kit/pkg/mbr"
	"github.com/bgrewell/disk-kit/pkg/option"
)

// Inspection holds the per-scheme probe results for one device. Every
// enabled scheme gets a result; schemes a device does not carry come back
// absent, not as errors.
type Inspection struct {
	Name      string
	MBR       mbr.Result
	GPT       gpt.Result
	Disklabel disklabel.Result
}

// Device is an open disk image or block device ready for inspection.
type Device struct {
	source  device.Source
	name    string
	options option.OpenOptions

	// inspection is populated by Inspect, or at open time when
	// ParseOnOpen is set.
	inspection *Inspection
}

func defaultOptions() option.OpenOptions {
	return option.OpenOptions{
		ParseOnOpen:         true,
		MBREnabled:          true,
		GPTEnabled:          true,
		DisklabelEnabled:    true,
		MBRTypeLabels:       lookup.MBRTypes,
		GPTTypeLabels:       lookup.GPTTypes,
		DisklabelTypeLabels: lookup.DisklabelTypes,
		Logger:              logging.DefaultLogger(),
	}
}

// Open opens the disk image or block device at location and, unless
// disabled with WithParseOnOpen(false), probes it for every enabled
// partitioning scheme.
func Open(location string, opts ...option.OpenOption) (*Device, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.DisplayName == "" {
		options.DisplayName = filepath.Base(location)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("disk: open %s: %w", location, err)
	}
	src := device.NewFileSource(f)

	d := &Device{
		source:  src,
		name:    options.DisplayName,
		options: options,
	}
	if options.ParseOnOpen {
		if _, err := d.Inspect(); err != nil {
			src.Close()
			return nil, err
		}
	}
	return d, nil
}

// New wraps an already-open source, typically an in-memory image, without
// touching the filesystem.
func New(src device.Source, opts ...option.OpenOption) (*Device, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.DisplayName == "" {
		options.DisplayName = "device"
	}

	d := &Device{
		source:  src,
		name:    options.DisplayName,
		options: options,
	}
	if options.ParseOnOpen {
		if _, err := d.Inspect(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Name returns the display name for the device.
func (d *Device) Name() string {
	return d.name
}

// Source returns the underlying read source.
func (d *Device) Source() device.Source {
	return d.source
}

// Inspection returns the most recent probe results, or nil when the device
// has not been inspected yet.
func (d *Device) Inspection() *Inspection {
	return d.inspection
}

// Inspect probes the device for every enabled scheme and caches the
// results. Scheme-level decode failures are reported inside the per-scheme
// results; the returned error covers only unusable sources.
func (d *Device) Inspect() (*Inspection, error) {
	if err := device.Validate(d.source); err != nil {
		return nil, fmt.Errorf("disk: %s: %w", d.name, err)
	}
	log := d.options.Log()

	insp := &Inspection{Name: d.name}
	if d.options.MBREnabled {
		insp.MBR = mbr.Read(d.source, &d.options)
		log.Debug("probed MBR", "device", d.name, "status", insp.MBR.Status)
	}
	if d.options.GPTEnabled {
		insp.GPT = gpt.Read(d.source, &d.options)
		log.Debug("probed GPT", "device", d.name, "status", insp.GPT.Status)
	}
	if d.options.DisklabelEnabled {
		insp.Disklabel = disklabel.Read(d.source, &d.options)
		log.Debug("probed disklabel", "device", d.name, "status", insp.Disklabel.Status)
	}

	d.inspection = insp
	return insp, nil
}

// Close releases the underlying source when it owns an open file handle.
func (d *Device) Close() error {
	if closer, ok := d.source.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
