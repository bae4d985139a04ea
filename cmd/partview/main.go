package main

import (
	"fmt"
	"os"
	"strings"

	disk "github.com/bgrewell/disk-kit"
	"github.com/bgrewell/disk-kit/pkg/disklabel"
	"github.com/bgrewell/disk-kit/pkg/gpt"
	"github.com/bgrewell/disk-kit/pkg/logging"
	"github.com/bgrewell/disk-kit/pkg/mbr"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
	"github.com/bgrewell/usage"
	"golang.org/x/term"
)

// truncateString truncates the input string to the specified max length.
// If truncation occurs, it prepends "..." to indicate the string has been shortened.
func truncateString(input string, maxLength int) string {
	if len(input) <= maxLength {
		return input
	}
	if maxLength <= 3 {
		return input[len(input)-maxLength:]
	}
	return "..." + input[len(input)-(maxLength-3):]
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func printMBR(result mbr.Result) {
	fmt.Println("MBR:")
	if !printStatus(result.Status, result.Err) {
		return
	}
	fmt.Printf("  Drive signature: %x\n", result.Header.DriveSignature)
	fmt.Printf("  %-5s %-6s %-4s %-12s %-12s %s\n",
		"Index", "Active", "Type", "LBA", "Sectors", "Description")
	for _, p := range result.Partitions {
		active := ""
		if p.Active {
			active = "*"
		}
		kind := p.TypeLabel
		if p.Logical() {
			kind += " (logical)"
		}
		fmt.Printf("  %-5d %-6s 0x%02X %-12d %-12d %s\n",
			p.Index, active, p.Type, p.LBA, p.Sectors, truncateString(kind, terminalWidth()-46))
	}
}

func printGPT(result gpt.Result) {
	fmt.Println("GPT:")
	if !printStatus(result.Status, result.Err) {
		return
	}
	fmt.Printf("  Disk GUID: %s  Revision: %.1f  Entries: %d\n",
		result.Header.DiskGUID, result.Header.Revision(), result.Header.EntryCount)
	fmt.Printf("  %-5s %-14s %-14s %-24s %s\n",
		"Index", "First LBA", "Last LBA", "Name", "Description")
	for _, p := range result.Partitions {
		fmt.Printf("  %-5d %-14d %-14d %-24s %s\n",
			p.Index, p.FirstLBA, p.LastLBA,
			truncateString(p.Name, 24), truncateString(p.TypeLabel, terminalWidth()-66))
	}
}

func printDisklabel(result disklabel.Result) {
	fmt.Println("Disklabel:")
	if !printStatus(result.Status, result.Err) {
		return
	}
	fmt.Printf("  Pack: %q  Slices: %d\n", result.Header.PackID, result.Header.SlicesTotal)
	fmt.Printf("  %-5s %-12s %-12s %s\n", "Slice", "First", "Sectors", "Description")
	for _, p := range result.Partitions {
		fmt.Printf("  %-5s %-12d %-12d %s\n",
			p.Letter(), p.FirstSector, p.SectorsTotal, p.TypeLabel)
	}
}

// printStatus reports non-present outcomes and tells the caller whether
// there is a table to print.
func printStatus(status scheme.Status, err error) bool {
	switch status {
	case scheme.StatusPresent:
		return true
	case scheme.StatusCorrupt:
		fmt.Printf("  corrupt: %v\n", err)
	default:
		fmt.Println("  not present")
	}
	return false
}

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("partview"),
		usage.WithApplicationDescription("partview prints the partition tables found on a disk image or block device, probing for MBR, GPT and BSD disklabel layouts."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print verbose output", "", nil)
	verify := u.AddBooleanOption("c", "checksums", false, "Verify GPT checksums", "", nil)
	path := u.AddArgument(1, "path", "Path to the disk image or block device", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("location of the disk image <path> must be provided"))
		os.Exit(1)
	}

	opts := []option.OpenOption{
		option.WithVerifyChecksums(*verify),
	}
	if *verbose {
		logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_DEBUG, true))
		opts = append(opts, option.WithLogger(logger))
	}

	d, err := disk.Open(*path, opts...)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer d.Close()

	insp := d.Inspection()
	fmt.Println(insp.Name)
	fmt.Println(strings.Repeat("=", len(insp.Name)))
	printMBR(insp.MBR)
	printGPT(insp.GPT)
	printDisklabel(insp.Disklabel)
}
