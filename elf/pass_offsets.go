// SPDX-License-Identifier: MIT

package elf

// CalculateSectionOffsets assigns file offsets and sizes to every section
// with a file-resident payload (spec §4.12), in group order rather than
// section-index order: RPL_CRCS, RPL_FILEINFO, data PROGBITS (not
// EXECINSTR), RPL_EXPORTS, RPL_IMPORTS, SYMTAB/STRTAB, code PROGBITS
// (EXECINSTR), then REL/RELA. Sections in none of those groups (NOBITS,
// and NULL) are not placed: their offset and Size stay whatever the earlier
// passes left them.
//
// The layout starts right after the section header table, which itself
// begins at secHdrOffset and is rounded up to a 64-byte boundary.
func (e *Elf) CalculateSectionOffsets() error {
	offset := e.secHdrOffset + alignUp(uint32(len(e.Sections))*sectionHeaderSize, 64)

	place := func(pred func(s *Section) bool) {
		for _, sec := range e.Sections {
			if !pred(sec) {
				continue
			}
			sec.offset = offset
			sec.Size = uint32(len(sec.Data))
			offset += sec.Size
		}
	}

	place(func(s *Section) bool { return s.Type == SHT_RPL_CRCS })
	place(func(s *Section) bool { return s.Type == SHT_RPL_FILEINFO })
	place(func(s *Section) bool {
		return s.Type == SHT_PROGBITS && s.Flags&SHF_EXECINSTR == 0
	})
	place(func(s *Section) bool { return s.Type == SHT_RPL_EXPORTS })
	place(func(s *Section) bool { return s.Type == SHT_RPL_IMPORTS })
	place(func(s *Section) bool { return s.Type == SHT_SYMTAB || s.Type == SHT_STRTAB })
	place(func(s *Section) bool {
		return s.Type == SHT_PROGBITS && s.Flags&SHF_EXECINSTR != 0
	})
	place(func(s *Section) bool { return s.Type == SHT_REL || s.Type == SHT_RELA })

	return nil
}
