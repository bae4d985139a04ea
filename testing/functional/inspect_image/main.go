package main

import (
	"fmt"
	"os"

	disk "github.com/bgrewell/disk-kit"
	"github.com/bgrewell/disk-kit/pkg/logging"
	"github.com/bgrewell/disk-kit/pkg/option"
	"github.com/bgrewell/disk-kit/pkg/scheme"
	"github.com/bgrewell/usage"
)

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("inspect_image"),
		usage.WithApplicationDescription("inspect_image is a functional testing application that is part of disk-kit and is designed to verify that the open and decode logic of disk-kit is working as expected against real disk images."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	verify := u.AddBooleanOption("c", "checksums", true, "Verify GPT checksums while decoding", "", nil)
	input := u.AddArgument(1, "input", "The input disk image to run the tests against", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if input == nil || *input == "" {
		u.PrintError(fmt.Errorf("location of the input disk image <input> must be provided"))
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_TRACE, true))
	d, err := disk.Open(*input,
		option.WithVerifyChecksums(*verify),
		option.WithLogger(logger))
	if err != nil {
		fmt.Printf("Failed to open disk image: %s\n", err)
		os.Exit(1)
	}
	defer d.Close()

	insp := d.Inspection()
	if insp.MBR.Status == scheme.StatusCorrupt {
		fmt.Printf("MBR corrupt: %s\n", insp.MBR.Err)
		os.Exit(1)
	}
	if insp.GPT.Status == scheme.StatusCorrupt {
		fmt.Printf("GPT corrupt: %s\n", insp.GPT.Err)
		os.Exit(1)
	}
	if insp.Disklabel.Status == scheme.StatusCorrupt {
		fmt.Printf("Disklabel corrupt: %s\n", insp.Disklabel.Err)
		os.Exit(1)
	}

	fmt.Printf("%s: mbr=%d gpt=%d disklabel=%d partitions\n",
		insp.Name,
		len(insp.MBR.Partitions),
		len(insp.GPT.Partitions),
		len(insp.Disklabel.Partitions))
}
