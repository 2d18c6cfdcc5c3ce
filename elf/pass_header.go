// SPDX-License-Identifier: MIT

package elf

import "fmt"

// FixFileHeader rewrites the ELF file header into its final RPX form
// (spec §4.10). The output never carries program headers — the Wii U
// loader builds its segment layout entirely from the section table and
// the synthesized RPL_FILEINFO record, so progHdrOffset/progHdrCount/
// progHdrEntrySize are all zeroed.
//
// The section header table is placed right after the 52-byte file header,
// rounded up to the teacher's 64-byte header alignment.
func (e *Elf) FixFileHeader() error {
	e.Class = ELFCLASS32
	e.Endian = ELFDATA2MSB
	e.Version = 1
	e.ABI = EABI_CAFE

	e.Type = ET_CAFE_RPX
	e.Machine = EM_PPC
	e.EVersion = 1
	e.Flags = 0

	e.progHdrOffset = 0
	e.progHdrEntrySize = 0
	e.progHdrCount = 0

	e.headerSize = elfHeaderSize
	e.secHdrOffset = alignUp(elfHeaderSize, 64)
	e.secHdrEntrySize = sectionHeaderSize
	e.secHdrCount = uint16(len(e.Sections))

	shstrtab := e.SectionByName(".shstrtab")
	if shstrtab == nil {
		return fmt.Errorf("fix file header: missing .shstrtab section")
	}
	e.secHdrStrIndex = uint16(e.SectionIndex(shstrtab))

	return nil
}
