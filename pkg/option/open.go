package option

import (
	"github.com/bgrewell/disk-kit/pkg/consts"
	"github.com/bgrewell/disk-kit/pkg/logging"
)

// OpenOptions controls how a device is opened and which schemes are probed.
type OpenOptions struct {
	ParseOnOpen      bool
	DisplayName      string
	MBREnabled       bool
	GPTEnabled       bool
	DisklabelEnabled bool

	// VerifyChecksums enables CRC32 validation of the GPT header and
	// partition entry array. Off by default since many tools write
	// tables without maintaining the array CRC.
	VerifyChecksums bool

	// SectorSize overrides the device-reported logical block size.
	// Zero keeps the reported size.
	SectorSize uint32

	// Type label tables handed to the parsers. Nil tables resolve every
	// code to the Unknown label.
	MBRTypeLabels       map[uint8]string
	GPTTypeLabels       map[string]string
	DisklabelTypeLabels map[uint8]string

	Logger *logging.Logger
}

// OpenOption is a function that modifies the OpenOptions.
type OpenOption func(*OpenOptions)

// Log returns the configured logger, or a discard logger when unset.
func (o *OpenOptions) Log() *logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.DefaultLogger()
}

// EffectiveSectorSize resolves the block size for one decode pass: an
// explicit override wins, then the device-reported size, then the default.
func (o *OpenOptions) EffectiveSectorSize(reported uint32) uint32 {
	if o.SectorSize != 0 {
		return o.SectorSize
	}
	if reported != 0 {
		return reported
	}
	return consts.DEFAULT_SECTOR_SIZE
}

// WithParseOnOpen sets whether the device is inspected immediately when
// opened. If false, Inspect must be called manually.
func WithParseOnOpen(parseOnOpen bool) OpenOption {
	return func(o *OpenOptions) {
		o.ParseOnOpen = parseOnOpen
	}
}

// WithDisplayName sets the name used for the device in reports. Defaults to
// the base name of the opened path.
func WithDisplayName(name string) OpenOption {
	return func(o *OpenOptions) {
		o.DisplayName = name
	}
}

// WithMBREnabled sets whether the MBR scheme is probed.
func WithMBREnabled(enabled bool) OpenOption {
	return func(o *OpenOptions) {
		o.MBREnabled = enabled
	}
}

// WithGPTEnabled sets whether the GPT scheme is probed.
func WithGPTEnabled(enabled bool) OpenOption {
	return func(o *OpenOptions) {
		o.GPTEnabled = enabled
	}
}

// WithDisklabelEnabled sets whether the BSD disklabel scheme is probed.
func WithDisklabelEnabled(enabled bool) OpenOption {
	return func(o *OpenOptions) {
		o.DisklabelEnabled = enabled
	}
}

// WithVerifyChecksums sets whether GPT CRC32 fields are validated.
func WithVerifyChecksums(enabled bool) OpenOption {
	return func(o *OpenOptions) {
		o.VerifyChecksums = enabled
	}
}

// WithSectorSize overrides the device-reported logical block size.
func WithSectorSize(size uint32) OpenOption {
	return func(o *OpenOptions) {
		o.SectorSize = size
	}
}

// WithMBRTypeLabels replaces the MBR type-code label table.
func WithMBRTypeLabels(labels map[uint8]string) OpenOption {
	return func(o *OpenOptions) {
		o.MBRTypeLabels = labels
	}
}

// WithGPTTypeLabels replaces the GPT type-GUID label table.
func WithGPTTypeLabels(labels map[string]string) OpenOption {
	return func(o *OpenOptions) {
		o.GPTTypeLabels = labels
	}
}

// WithDisklabelTypeLabels replaces the disklabel type-code label table.
func WithDisklabelTypeLabels(labels map[uint8]string) OpenOption {
	return func(o *OpenOptions) {
		o.DisklabelTypeLabels = labels
	}
}

// WithLogger sets the logger used during decoding.
func WithLogger(logger *logging.Logger) OpenOption {
	return func(o *OpenOptions) {
		o.Logger = logger
	}
}
