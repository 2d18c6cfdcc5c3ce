// SPDX-License-Identifier: MIT

package elf

import (
	"fmt"
	"sort"
)

// FixRelocations rewrites every RELA section's entries into the subset of
// PowerPC relocation types the Wii U loader understands (spec §4.5).
//
// Supported types pass through unchanged. R_PPC_REL32 is expanded into a
// pair: the existing entry becomes R_PPC_GHS_REL16_HI (offset/addend
// unchanged), and a new R_PPC_GHS_REL16_LO entry is appended with the same
// symbol, offset+2, addend+2. New entries are collected separately and
// appended only after the section has been fully scanned, so appending
// never perturbs the iteration over original entries.
//
// Any other type is unsupported: every distinct offending type is
// reported once, and the pass fails after finishing the scan (so a single
// run surfaces every offender instead of stopping at the first one).
func (e *Elf) FixRelocations() error {
	unsupported := make(map[RelocationType]bool)

	for _, sec := range e.Sections {
		if sec.Type != SHT_RELA {
			continue
		}

		sec.Flags = 0

		relocations := sec.Relocations()
		var appended []Relocation

		for i := range relocations {
			rel := &relocations[i]

			if supportedRelocationTypes[rel.Type] {
				continue
			}

			if rel.Type == R_PPC_REL32 {
				appended = append(appended, Relocation{
					Offset:      rel.Offset + 2,
					SymbolIndex: rel.SymbolIndex,
					Type:        R_PPC_GHS_REL16_LO,
					Addend:      rel.Addend + 2,
				})
				rel.Type = R_PPC_GHS_REL16_HI
				continue
			}

			unsupported[rel.Type] = true
		}

		relocations = append(relocations, appended...)
		sec.SetRelocations(relocations)
	}

	if len(unsupported) > 0 {
		types := make([]int, 0, len(unsupported))
		for t := range unsupported {
			types = append(types, int(t))
		}
		sort.Ints(types)
		return fmt.Errorf("unsupported relocation type(s): %v", types)
	}

	return nil
}
