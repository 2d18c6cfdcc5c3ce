// SPDX-License-Identifier: MIT

package elf

// FixSectionAlign overrides AddrAlign for the section types the loader
// cares about (spec §4.6): PROGBITS sections align to 32, NOBITS (.bss)
// aligns to 64, RPL_IMPORTS aligns to 4. Every other section type retains
// whatever alignment the input linker assigned it.
func (e *Elf) FixSectionAlign() error {
	for _, sec := range e.Sections {
		switch sec.Type {
		case SHT_PROGBITS:
			sec.AddrAlign = 32
		case SHT_NOBITS:
			sec.AddrAlign = 64
		case SHT_RPL_IMPORTS:
			sec.AddrAlign = 4
		}
	}
	return nil
}
