// SPDX-License-Identifier: MIT

package elf

// File identification. Only the 32-bit big-endian class/encoding pair is
// ever valid input for an RPX conversion; anything else is a validation
// failure in Reader.
type FileClass uint8

const (
	ELFCLASS32 FileClass = 1
)

type FileEndian uint8

const (
	ELFDATA2MSB FileEndian = 2
)

// FileABI identifies the ABI extension stored in the ident block. Unlike
// standard ELF's single-byte EI_OSABI, the RPL ident packs this as one
// 16-bit big-endian field in place of EI_OSABI/EI_ABIVERSION combined. RPX
// files use the Cafe (Wii U) ABI, written by the header fix-up pass.
type FileABI uint16

const (
	EABI_CAFE FileABI = 0xCAFE
)

type FileType uint16

const (
	ET_NONE FileType = 0
	ET_EXEC FileType = 2
	// ET_CAFE_RPX is the RPL loader's file type, written over whatever
	// type the input linker produced.
	ET_CAFE_RPX FileType = 0xFE01
)

type MachineType uint16

const (
	EM_PPC MachineType = 20
)

// Section header index reservations.
const (
	SHN_UNDEF     = 0
	SHN_LORESERVE = 0xFF00
	SHN_ABS       = 0xFFF1
	SHN_COMMON    = 0xFFF2
	SHN_XINDEX    = 0xFFFF
)

type SectionHeaderType uint32

const (
	SHT_NULL     SectionHeaderType = 0
	SHT_PROGBITS SectionHeaderType = 1
	SHT_SYMTAB   SectionHeaderType = 2
	SHT_STRTAB   SectionHeaderType = 3
	SHT_RELA     SectionHeaderType = 4
	SHT_NOBITS   SectionHeaderType = 8
	SHT_REL      SectionHeaderType = 9

	// RPL-specific section types (spec §6).
	SHT_RPL_EXPORTS  SectionHeaderType = 0x80000001
	SHT_RPL_IMPORTS  SectionHeaderType = 0x80000002
	SHT_RPL_CRCS     SectionHeaderType = 0x80000003
	SHT_RPL_FILEINFO SectionHeaderType = 0x80000004
)

// HasDataInFile reports whether a section of this type carries a payload
// on disk. NOBITS sections (.bss) reserve space without storing bytes.
func (s SectionHeaderType) HasDataInFile() bool {
	return s != SHT_NOBITS
}

// IsRelocation reports whether a section of this type holds relocation
// records (its Info field names the section being relocated).
func (s SectionHeaderType) IsRelocation() bool {
	return s == SHT_REL || s == SHT_RELA
}

type SectionHeaderFlag uint32

const (
	SHF_WRITE     SectionHeaderFlag = 0x00000001
	SHF_ALLOC     SectionHeaderFlag = 0x00000002
	SHF_EXECINSTR SectionHeaderFlag = 0x00000004

	// SHF_DEFLATED marks a section whose payload is a 4-byte big-endian
	// inflated-size prefix followed by a zlib deflate stream.
	SHF_DEFLATED SectionHeaderFlag = 0x08000000
)

type SymbolType int

const (
	STT_NOTYPE  SymbolType = 0
	STT_OBJECT  SymbolType = 1
	STT_FUNC    SymbolType = 2
	STT_SECTION SymbolType = 3
	STT_FILE    SymbolType = 4
)

type SymbolBinding int

const (
	STB_LOCAL  SymbolBinding = 0
	STB_GLOBAL SymbolBinding = 1
	STB_WEAK   SymbolBinding = 2
)

// RelocationType enumerates the PowerPC ELF ABI relocation types the Wii U
// loader's relocation table may reference, plus the two proprietary
// GHS_REL16 types the fix-up pass synthesizes in place of R_PPC_REL32.
type RelocationType uint32

const (
	R_PPC_NONE      RelocationType = 0
	R_PPC_ADDR32    RelocationType = 1
	R_PPC_ADDR16_LO RelocationType = 4
	R_PPC_ADDR16_HI RelocationType = 5
	R_PPC_ADDR16_HA RelocationType = 6
	R_PPC_REL24     RelocationType = 10
	R_PPC_REL14     RelocationType = 11
	R_PPC_REL32     RelocationType = 26

	R_PPC_DTPMOD32   RelocationType = 68
	R_PPC_DTPREL32   RelocationType = 78
	R_PPC_EMB_SDA21  RelocationType = 109
	R_PPC_EMB_RELSDA RelocationType = 116

	R_PPC_DIAB_SDA21_LO  RelocationType = 180
	R_PPC_DIAB_SDA21_HI  RelocationType = 181
	R_PPC_DIAB_SDA21_HA  RelocationType = 182
	R_PPC_DIAB_RELSDA_LO RelocationType = 183
	R_PPC_DIAB_RELSDA_HI RelocationType = 184
	R_PPC_DIAB_RELSDA_HA RelocationType = 185

	// R_PPC_GHS_REL16_LO/HI are the Wii U loader's substitute for the
	// unsupported R_PPC_REL32: together they encode the same 32-bit
	// PC-relative offset as two 16-bit halves.
	R_PPC_GHS_REL16_LO RelocationType = 250
	R_PPC_GHS_REL16_HI RelocationType = 251
)

// supportedRelocationTypes is the allowed set from spec §4.5 — every type
// a RELA entry may hold untouched after the relocation fix-up pass runs.
// R_PPC_GHS_REL16_LO/HI are not listed here: they only ever appear as the
// *output* of rewriting a REL32, never as valid input.
var supportedRelocationTypes = map[RelocationType]bool{
	R_PPC_NONE:           true,
	R_PPC_ADDR32:         true,
	R_PPC_ADDR16_LO:      true,
	R_PPC_ADDR16_HI:      true,
	R_PPC_ADDR16_HA:      true,
	R_PPC_REL24:          true,
	R_PPC_REL14:          true,
	R_PPC_DTPMOD32:       true,
	R_PPC_DTPREL32:       true,
	R_PPC_EMB_SDA21:      true,
	R_PPC_EMB_RELSDA:     true,
	R_PPC_DIAB_SDA21_LO:  true,
	R_PPC_DIAB_SDA21_HI:  true,
	R_PPC_DIAB_SDA21_HA:  true,
	R_PPC_DIAB_RELSDA_LO: true,
	R_PPC_DIAB_RELSDA_HI: true,
	R_PPC_DIAB_RELSDA_HA: true,
}

// RplModuleFlag values for RplFileInfo.Flags.
type RplModuleFlag uint32

const (
	RPL_IS_RPX RplModuleFlag = 1 << 0
)

const (
	// RplFileInfoVersion is the constant magic/version field every RPL
	// file carries in its RplFileInfo record.
	RplFileInfoVersion uint32 = 0xCAFE0402

	// RplMinimumVersion is the minimum loader version required to run this
	// module, written verbatim into RplFileInfo.MinVersion.
	RplMinimumVersion uint16 = 0x5078

	RplSdkVersion  uint16 = 0x51BA
	RplSdkRevision uint16 = 0xCCD1

	RplTextAlign uint32 = 32
	RplDataAlign uint32 = 4096
	RplLoadAlign uint32 = 4
	RplStackSize uint32 = 0x10000
	RplHeapSize  uint32 = 0x8000

	// RplCompressionLevel is stored as a signed byte; -1 matches what the
	// reference tool writes (the effective deflate level is tracked
	// per-section via SHF_DEFLATED, the field itself is only retained for
	// loader compatibility).
	RplCompressionLevel int8 = -1
)

// deflateMinSectionSize is the payload-size threshold below which the
// deflate pass leaves a section uncompressed (spec §4.11).
const deflateMinSectionSize = 0x18
