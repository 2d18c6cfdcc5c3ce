// SPDX-License-Identifier: MIT

package elf

import "fmt"

// FixBssNoBits undoes a linker-script quirk where .bss is sometimes
// emitted as PROGBITS instead of NOBITS (spec §4.4). If a PROGBITS .bss
// section exists, every byte of its payload must be zero; the section is
// then converted back to NOBITS with its file offset cleared and its
// payload dropped (the header Size field is retained per invariant I7).
func (e *Elf) FixBssNoBits() error {
	sec := e.SectionByName(".bss")
	if sec == nil || sec.Type != SHT_PROGBITS {
		return nil
	}

	for _, b := range sec.Data {
		if b != 0 {
			return fmt.Errorf(".bss section emitted as PROGBITS contains non-zero data")
		}
	}

	sec.Type = SHT_NOBITS
	sec.offset = 0
	sec.Data = nil
	return nil
}
