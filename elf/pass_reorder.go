// SPDX-License-Identifier: MIT

package elf

import "fmt"

// ReorderSectionIndex reassigns section indices to the bucket order the
// Wii U loader expects (spec §4.3):
//
//  1. NULL section
//  2. PROGBITS+EXECINSTR                 (e.g. .syscall, .text)
//  3. RPL_EXPORTS                        (e.g. .fexports)
//  4. PROGBITS, not EXECINSTR, not WRITE (e.g. .rodata)
//  5. PROGBITS, not EXECINSTR, WRITE     (e.g. .data, .module_id)
//  6. NOBITS                             (e.g. .bss)
//  7. REL / RELA                         (e.g. .rela.text, .rela.data)
//  8. RPL_IMPORTS                        (e.g. .fimport, .dimport)
//  9. SYMTAB / STRTAB                    (.symtab, .strtab, .shstrtab)
//
// Within each bucket, original relative order is preserved. Every
// index-typed field elsewhere in the file (ShStrIndex, section Link,
// RELA Info, symbol SectionIndex below SHN_LORESERVE) is remapped through
// the resulting old→new permutation in a second pass, so that fields
// which reference each other are never read after being half-updated.
func (e *Elf) ReorderSectionIndex() error {
	oldSections := e.Sections
	newOrder := []int{0} // NULL section stays first

	bucket := func(pred func(s *Section) bool) {
		for i := 1; i < len(oldSections); i++ {
			if pred(oldSections[i]) {
				newOrder = append(newOrder, i)
			}
		}
	}

	bucket(func(s *Section) bool {
		return s.Type == SHT_PROGBITS && s.Flags&SHF_EXECINSTR != 0
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_RPL_EXPORTS
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_PROGBITS && s.Flags&SHF_EXECINSTR == 0 && s.Flags&SHF_WRITE == 0
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_PROGBITS && s.Flags&SHF_EXECINSTR == 0 && s.Flags&SHF_WRITE != 0
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_NOBITS
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_REL || s.Type == SHT_RELA
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_RPL_IMPORTS
	})
	bucket(func(s *Section) bool {
		return s.Type == SHT_SYMTAB || s.Type == SHT_STRTAB
	})

	if len(newOrder) != len(oldSections) {
		return fmt.Errorf("reorder: %d of %d sections matched a known bucket (unclassified section type in input)",
			len(newOrder), len(oldSections))
	}

	newSections := make([]*Section, len(newOrder))
	oldToNew := make([]uint16, len(oldSections))
	for newIdx, oldIdx := range newOrder {
		newSections[newIdx] = oldSections[oldIdx]
		oldToNew[oldIdx] = uint16(newIdx)
	}
	e.Sections = newSections

	remap := func(idx uint16) uint16 {
		if idx >= SHN_LORESERVE {
			return idx
		}
		return oldToNew[idx]
	}

	e.secHdrStrIndex = remap(e.secHdrStrIndex)

	for _, sec := range e.Sections {
		sec.Link = uint32(remap(uint16(sec.Link)))
	}

	for _, sec := range e.Sections {
		if sec.Type != SHT_RELA {
			continue
		}
		sec.Info = uint32(remap(uint16(sec.Info)))
	}

	for _, sec := range e.Sections {
		if sec.Type != SHT_SYMTAB {
			continue
		}
		symbols := sec.Symbols()
		for i := range symbols {
			if uint32(symbols[i].SectionIndex) < SHN_LORESERVE {
				symbols[i].SectionIndex = remap(symbols[i].SectionIndex)
			}
		}
		sec.SetSymbols(symbols)
	}

	return nil
}
