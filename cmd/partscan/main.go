package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	disk "github.com/bgrewell/disk-kit"
	"github.com/bgrewell/disk-kit/pkg/logging"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
	"github.com/theckman/yacspin"
)

var (
	version = "dev"
)

// InitializeSpinner sets up and starts the yacspin spinner.
func InitializeSpinner() (*yacspin.Spinner, error) {
	settings := yacspin.Config{
		Frequency:         100 * time.Millisecond,
		ShowCursor:        false,
		SpinnerAtEnd:      false,
		CharSet:           yacspin.CharSets[14],
		Colors:            []string{"fgHiCyan"},
		StopColors:        []string{"fgHiGreen"},
		StopFailColors:    []string{"fgHiRed"},
		StopFailCharacter: "✗",
		StopCharacter:     "✓",
	}

	spinner, err := yacspin.New(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create spinner: %w", err)
	}

	if err := spinner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start spinner: %w", err)
	}

	return spinner, nil
}

func statusWord(s scheme.Status) string {
	switch s {
	case scheme.StatusPresent:
		return "present"
	case scheme.StatusCorrupt:
		return "CORRUPT"
	}
	return "-"
}

func main() {
	// Logging level flags
	debug := flag.Bool("v", false, "Enable verbose (debug) logging")
	trace := flag.Bool("vv", false, "Enable trace logging")

	// Decode options
	verify := flag.Bool("checksums", false, "Verify GPT header and entry array checksums")
	sectorSize := flag.Uint("sector-size", 0, "Override the logical sector size in bytes")
	noMBR := flag.Bool("no-mbr", false, "Skip the MBR probe")
	noGPT := flag.Bool("no-gpt", false, "Skip the GPT probe")
	noDisklabel := flag.Bool("no-disklabel", false, "Skip the BSD disklabel probe")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("partscan v" + version)
		fmt.Println("Usage: partscan [options] <image> [image...]")
		fmt.Println("  -v               Enable verbose (debug) logging")
		fmt.Println("  -vv              Enable trace logging")
		fmt.Println("  -checksums       Verify GPT checksums")
		fmt.Println("  -sector-size <n> Override the logical sector size")
		fmt.Println("  -no-mbr          Skip the MBR probe")
		fmt.Println("  -no-gpt          Skip the GPT probe")
		fmt.Println("  -no-disklabel    Skip the BSD disklabel probe")
		os.Exit(1)
	}

	opts := []option.OpenOption{
		option.WithVerifyChecksums(*verify),
		option.WithMBREnabled(!*noMBR),
		option.WithGPTEnabled(!*noGPT),
		option.WithDisklabelEnabled(!*noDisklabel),
	}
	if *sectorSize > 0 {
		opts = append(opts, option.WithSectorSize(uint32(*sectorSize)))
	}
	level := -1
	if *debug {
		level = logging.LEVEL_DEBUG
	}
	if *trace {
		level = logging.LEVEL_TRACE
	}
	if level >= 0 {
		logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, level, true))
		opts = append(opts, option.WithLogger(logger))
	}

	spinner, err := InitializeSpinner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize spinner: %v\n", err)
	}

	failures := 0
	for _, path := range flag.Args() {
		if spinner != nil {
			spinner.Message(fmt.Sprintf(" scanning %s", path))
		}

		d, err := disk.Open(path, opts...)
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}

		insp := d.Inspection()
		total := len(insp.MBR.Partitions) + len(insp.GPT.Partitions) + len(insp.Disklabel.Partitions)
		fmt.Printf("%-40s mbr=%-8s gpt=%-8s disklabel=%-8s partitions=%d\n",
			insp.Name,
			statusWord(insp.MBR.Status),
			statusWord(insp.GPT.Status),
			statusWord(insp.Disklabel.Status),
			total)
		d.Close()
	}

	if spinner != nil {
		if failures > 0 {
			spinner.StopFailMessage(fmt.Sprintf("%d of %d images failed", failures, flag.NArg()))
			spinner.StopFail()
		} else {
			spinner.StopMessage(fmt.Sprintf("scanned %d images", flag.NArg()))
			spinner.Stop()
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}
