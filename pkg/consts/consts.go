package consts

const (
	// Logical sector size assumed when the device cannot report one.
	DEFAULT_SECTOR_SIZE = 512

	// MBR and EBR sectors are always addressed in 512-byte units,
	// independent of the device's reported block size.
	MBR_SECTOR_SIZE = 512

	// Boot signature closing an MBR or EBR sector (0x55 0xAA on disk,
	// read as a little-endian uint16).
	BOOT_SIGNATURE = 0xAA55

	// Number of primary partition slots embedded in the MBR sector.
	MBR_PARTITION_SLOTS = 4

	// Size of one MBR partition slot in bytes.
	MBR_PARTITION_SIZE = 16

	// Index assigned to the first logical partition found in the EBR
	// chain. Logical partitions are numbered after the primary slots.
	MBR_FIRST_LOGICAL_INDEX = 5

	// GPT header signature.
	GPT_SIGNATURE = "EFI PART"

	// LBA of the GPT header, immediately after the protective MBR.
	GPT_HEADER_LBA = 1

	// Minimum valid GPT header size in bytes.
	GPT_MIN_HEADER_SIZE = 92

	// Structural size of one GPT partition entry. Headers may declare a
	// larger per-entry stride; the excess bytes carry no fields.
	GPT_ENTRY_SIZE = 128

	// BSD disklabel magic, present twice in the header. The on-disk byte
	// sequence is 57 45 56 82 read as a little-endian uint32.
	DISKLABEL_MAGIC = 0x82564557

	// Fixed size of the disklabel header. The partition slice array
	// starts at this offset within the disklabel block.
	DISKLABEL_HEADER_SIZE = 0x94

	// Size of one disklabel partition slice in bytes.
	DISKLABEL_SLICE_SIZE = 16

	// Highest slice count representable with the a..z letter notation.
	DISKLABEL_MAX_SLICES = 26
)
