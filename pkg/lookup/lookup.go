package lookup

// Unknown is the label resolved for any type code or GUID that has no entry
// in the lookup tables. Lookups never fail on unrecognized input.
const Unknown = "Unknown"

// Label resolves key against the given table, falling back to Unknown.
func Label[K comparable](table map[K]string, key K) string {
	if label, ok := table[key]; ok {
		return label
	}
	return Unknown
}

// MBRTypes maps MBR partition type codes to filesystem or vendor names.
var MBRTypes = map[uint8]string{
	0x00: "Empty",
	0x01: "FAT12",
	0x04: "FAT16 16-32MB",
	0x05: "Extended, CHS",
	0x06: "FAT16 32MB-2GB",
	0x07: "NTFS",
	0x0B: "FAT32",
	0x0C: "FAT32X",
	0x0E: "FAT16X",
	0x0F: "Extended, LBA",
	0x11: "Hidden FAT12",
	0x14: "Hidden FAT16,16-32MB",
	0x15: "Hidden Extended, CHS",
	0x16: "Hidden FAT16,32MB-2GB",
	0x17: "Hidden NTFS",
	0x1B: "Hidden FAT32",
	0x1C: "Hidden FAT32X",
	0x1E: "Hidden FAT16X",
	0x1F: "Hidden Extended, LBA",
	0x27: "Windows recovery environment",
	0x39: "Plan 9",
	0x3C: "PartitionMagic recovery partition",
	0x42: "Windows dynamic extended partition marker",
	0x44: "GoBack partition",
	0x63: "Unix System V",
	0x64: "PC-ARMOUR protected partition",
	0x81: "Minix",
	0x82: "Linux Swap",
	0x83: "Linux",
	0x84: "Hibernation",
	0x85: "Linux Extended",
	0x86: "Fault-tolerant FAT16B volume set",
	0x87: "Fault-tolerant NTFS volume set",
	0x88: "Linux plaintext",
	0x8E: "Linux LVM",
	0x93: "Hidden Linux",
	0x9F: "BSD/OS",
	0xA0: "Hibernation",
	0xA1: "Hibernation",
	0xA5: "FreeBSD",
	0xA6: "OpenBSD",
	0xA8: "Mac OS X",
	0xA9: "NetBSD",
	0xAB: "Mac OS X Boot",
	0xAF: "Mac OS X HFS",
	0xBE: "Solaris 8 boot",
	0xBF: "Solaris x86",
	0xE8: "Linux Unified Key Setup",
	0xEB: "BFS",
	0xEE: "EFI GPT protec MBR",
	0xEF: "EFI system",
	0xFA: "Bochs x86 emulator",
	0xFB: "VMware File System",
	0xFC: "VMware Swap",
	0xFD: "Linux RAID",
}

// GPTTypes maps canonical uppercase partition type GUIDs to names.
var GPTTypes = map[string]string{
	"024DEE41-33E7-11D3-9D69-0008C781F39F": "MBR partition scheme",
	"C12A7328-F81F-11D2-BA4B-00A0C93EC93B": "EFI System partition",
	"21686148-6449-6E6F-744E-656564454649": "BIOS Boot partition",
	"D3BFE2DE-3DAF-11DF-BA40-E3A556D89593": "Intel Fast Flash (iFFS) partition (for Intel Rapid Start technology)",
	"F4019732-066E-4E12-8273-346C5641494F": "Sony boot partition",
	"BFBFAFE7-A34F-448A-9A5B-6213EB736C22": "Lenovo boot partition / Ceph Journal",
	"E3C9E316-0B5C-4DB8-817D-F92DF00215AE": "Microsoft Reserved Partition (MSR)",
	"EBD0A0A2-B9E5-4433-87C0-68B6B72699C7": "Basic data partition",
	"5808C8AA-7E8F-42E0-85D2-E1E90434CFB3": "Logical Disk Manager (LDM) metadata partition",
	"AF9B60A0-1431-4F62-BC68-3311714A69AD": "Logical Disk Manager data partition",
	"DE94BBA4-06D1-4D40-A16A-BFD50179D6AC": "Windows Recovery Environment",
	"37AFFC90-EF7D-4E96-91C3-2D7AE055B174": "IBM General Parallel File System (GPFS) partition",
	"75894C1E-3AEB-11D3-B7C1-7B03A0000000": "Data partition",
	"E2A1E728-32E3-11D6-A682-7B03A0000000": "Service Partition",
	"0FC63DAF-8483-4772-8E79-3D69D8477DE4": "Linux filesystem data",
	"A19D880F-05FC-4D3B-A006-743F0F84911E": "RAID partition",
	"0657FD6D-A4AB-43C4-84E5-0933C84B4F4F": "Swap partition",
	"E6D6D379-F507-44C2-A23C-238F2A3DF928": "Logical Volume Manager (LVM) partition",
	"933AC7E1-2EB4-4F13-B844-0E14E2AEF915": "/home partition",
	"3B8F8425-20E0-4F3B-907F-1A25A76F98E8": "/srv partition",
	"7FFEC5C9-2D00-49B7-8941-3EA10A5586B7": "Plain dm-crypt partition",
	"CA7D7CCB-63ED-4C53-861C-1742536059CC": "LUKS partition",
	"8DA63339-0007-60C0-C436-083AC8230908": "Reserved",
	"83BD6B9D-7F41-11DC-BE0B-001560B84F0F": "Boot partition",
	"516E7CB4-6ECF-11D6-8FF8-00022D09712B": "Data partition",
	"516E7CB5-6ECF-11D6-8FF8-00022D09712B": "Swap partition",
	"516E7CB6-6ECF-11D6-8FF8-00022D09712B": "Unix File System (UFS) partition",
	"516E7CB8-6ECF-11D6-8FF8-00022D09712B": "Vinum volume manager partition",
	"516E7CBA-6ECF-11D6-8FF8-00022D09712B": "ZFS partition",
	"48465300-0000-11AA-AA11-00306543ECAC": "Hierarchical File System Plus (HFS+) partition",
	"55465300-0000-11AA-AA11-00306543ECAC": "Apple UFS",
	"6A898CC3-1DD2-11B2-99A6-080020736631": "ZFS / usr partition",
	"52414944-0000-11AA-AA11-00306543ECAC": "Apple RAID partition",
	"52414944-5F4F-11AA-AA11-00306543ECAC": "Apple RAID partition, offline",
	"426F6F74-0000-11AA-AA11-00306543ECAC": "Apple Boot partition",
	"4C616265-6C00-11AA-AA11-00306543ECAC": "Apple Label",
	"5265636F-7665-11AA-AA11-00306543ECAC": "Apple TV Recovery partition",
	"53746F72-6167-11AA-AA11-00306543ECAC": "Apple Core Storage (i.e. Lion FileVault) partition",
	"6A82CB45-1DD2-11B2-99A6-080020736631": "Boot partition",
	"6A85CF4D-1DD2-11B2-99A6-080020736631": "Root partition",
	"6A87C46F-1DD2-11B2-99A6-080020736631": "Swap partition",
	"6A8B642B-1DD2-11B2-99A6-080020736631": "Backup partition",
	"6A8EF2E9-1DD2-11B2-99A6-080020736631": "/var partition",
	"6A90BA39-1DD2-11B2-99A6-080020736631": "/home partition",
	"6A9283A5-1DD2-11B2-99A6-080020736631": "Alternate sector",
	"6A945A3B-1DD2-11B2-99A6-080020736631": "Reserved partition",
	"6A9630D1-1DD2-11B2-99A6-080020736631": "Reserved partition",
	"6A980767-1DD2-11B2-99A6-080020736631": "Reserved partition",
	"6A96237F-1DD2-11B2-99A6-080020736631": "Reserved partition",
	"6A8D2AC7-1DD2-11B2-99A6-080020736631": "Reserved partition",
	"49F48D32-B10E-11DC-B99B-0019D1879648": "Swap partition",
	"49F48D5A-B10E-11DC-B99B-0019D1879648": "FFS partition",
	"49F48D82-B10E-11DC-B99B-0019D1879648": "LFS partition",
	"49F48DAA-B10E-11DC-B99B-0019D1879648": "RAID partition",
	"2DB519C4-B10F-11DC-B99B-0019D1879648": "Concatenated partition",
	"2DB519EC-B10F-11DC-B99B-0019D1879648": "Encrypted partition",
	"FE3A2A5D-4F32-41A7-B725-ACCC3285A309": "ChromeOS kernel",
	"3CB8E202-3B7E-47DD-8A3C-7FF2A13CFCEC": "ChromeOS rootfs",
	"2E0A753D-9E48-43B0-8337-B15192CB1B5E": "ChromeOS future use",
	"42465331-3BA3-10F1-802A-4861696B7521": "Haiku BFS",
	"85D5E45E-237C-11E1-B4B3-E89A8F7FC3A7": "Boot partition",
	"85D5E45A-237C-11E1-B4B3-E89A8F7FC3A7": "Data partition",
	"85D5E45B-237C-11E1-B4B3-E89A8F7FC3A7": "Swap partition",
	"0394EF8B-237E-11E1-B4B3-E89A8F7FC3A7": "Unix File System (UFS) partition",
	"85D5E45C-237C-11E1-B4B3-E89A8F7FC3A7": "Vinum volume manager partition",
	"85D5E45D-237C-11E1-B4B3-E89A8F7FC3A7": "ZFS partition",
	"45B0969E-9B03-4F30-B4C6-5EC00CEFF106": "Ceph dm-crypt Encrypted Journal",
	"4FBD7E29-9D25-41B8-AFD0-062C0CEFF05D": "Ceph OSD",
	"4FBD7E29-9D25-41B8-AFD0-5EC00CEFF05D": "Ceph dm-crypt OSD",
	"89C57F98-2FE5-4DC0-89C1-F3AD0CEFF2BE": "Ceph disk in creation",
	"89C57F98-2FE5-4DC0-89C1-5EC00CEFF2BE": "Ceph dm-crypt disk in creation",
}

// DisklabelTypes maps BSD disklabel partition type codes to names.
var DisklabelTypes = map[uint8]string{
	0x00: "Unused",
	0x01: "Swap",
	0x02: "V6",
	0x03: "V7",
	0x04: "SystemV",
	0x05: "4.1BSD",
	0x06: "Eighth edition",
	0x07: "4.2BSD fast file system (FFS)",
	0x08: "MSDOS (FAT variants)",
	0x09: "4.4BSD (LFS)",
	0x0A: "Unknown",
	0x0B: "OS/2 (HPFS)",
	0x0C: "CD-ROM (ISO9660)",
	0x0D: "Bootstrap",
	0x1B: "ZFS",
	0x20: "NTFS",
}
