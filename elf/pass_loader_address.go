// SPDX-License-Identifier: MIT

package elf

import (
	"fmt"
	"math"

	"github.com/Supercrafter008/wut/relocation"
)

// sectionPlacement adapts *Section to relocation.RegionPlaceable so the
// loader-address pass can drive placement through the same generic
// region/gap allocator the teacher toolchain uses for its own linker
// output layout, instead of hand-rolling an align-up-and-advance loop.
//
// The chosen address is tracked here rather than written straight into
// section.Address, because relocateSectionTo still needs to read the
// section's *old* address after placement has happened in order to
// compute the symbol/relocation delta.
type sectionPlacement struct {
	section *Section
	newAddr uint64
}

func (p *sectionPlacement) Offset() uint64       { return p.newAddr }
func (p *sectionPlacement) SetOffset(off uint64) { p.newAddr = off }
func (p *sectionPlacement) Size() uint64         { return uint64(p.section.EffectiveSize()) }
func (p *sectionPlacement) Alignment() uint64    { return uint64(p.section.AddrAlign) }

// FixLoaderVirtualAddresses places loader-segment sections at consecutive
// virtual addresses starting at LoadBaseAddress (spec §4.7). Sections are
// visited in a fixed order: .fexports, .dexports, .symtab, .strtab,
// .shstrtab, then every RPL_IMPORTS section in section-sequence order.
// .symtab/.strtab/.shstrtab additionally gain SHF_ALLOC once relocated,
// becoming loader-visible.
func (e *Elf) FixLoaderVirtualAddresses() error {
	// Bounded to the uint32 address space sections actually live in (Address/
	// Offset fields are uint32) rather than the full uint64 range: sizing the
	// region to span uint64 makes offsetMax-offsetMin overflow int64 in
	// Region.Place's gap check, which always reports no gap and fails on the
	// very first placement.
	region := relocation.NewRegion[*sectionPlacement](uint64(LoadBaseAddress), uint64(math.MaxUint32)-uint64(LoadBaseAddress), false)

	place := func(sec *Section, makeAlloc bool) error {
		if sec == nil {
			return nil
		}
		p := &sectionPlacement{section: sec}
		if ok, _ := region.Place(p, nil, false); !ok {
			return fmt.Errorf("could not place section %q in loader address space", sec.Name)
		}
		e.relocateSectionTo(sec, uint32(p.Offset()))
		if makeAlloc {
			sec.Flags |= SHF_ALLOC
		}
		return nil
	}

	if err := place(e.SectionByName(".fexports"), false); err != nil {
		return err
	}
	if err := place(e.SectionByName(".dexports"), false); err != nil {
		return err
	}
	if err := place(e.SectionByName(".symtab"), true); err != nil {
		return err
	}
	if err := place(e.SectionByName(".strtab"), true); err != nil {
		return err
	}
	if err := place(e.SectionByName(".shstrtab"), true); err != nil {
		return err
	}

	for _, sec := range e.Sections {
		if sec.Type == SHT_RPL_IMPORTS {
			if err := place(sec, false); err != nil {
				return err
			}
		}
	}

	return nil
}

// relocateSectionTo moves sec to newAddr (spec §4.7.1): every symbol of
// type OBJECT, FUNC or SECTION whose value fell within sec's old address
// range is rewritten to the same offset within the new range, and every
// relocation entry whose offset fell within that range is rewritten the
// same way. The bound check is inclusive on both ends — a symbol sitting
// exactly at the section's one-past-the-end address (legal in ELF, common
// for linker-emitted end-of-section markers) still moves with it.
func (e *Elf) relocateSectionTo(sec *Section, newAddr uint32) {
	oldAddr := sec.Address
	oldEnd := oldAddr + sec.EffectiveSize()

	for _, symtab := range e.Sections {
		if symtab.Type != SHT_SYMTAB {
			continue
		}
		symbols := symtab.Symbols()
		changed := false
		for i := range symbols {
			sym := &symbols[i]
			if sym.Type != STT_OBJECT && sym.Type != STT_FUNC && sym.Type != STT_SECTION {
				continue
			}
			if sym.Value >= oldAddr && sym.Value <= oldEnd {
				sym.Value = sym.Value - oldAddr + newAddr
				changed = true
			}
		}
		if changed {
			symtab.SetSymbols(symbols)
		}
	}

	for _, relaSec := range e.Sections {
		if relaSec.Type != SHT_RELA {
			continue
		}
		relocations := relaSec.Relocations()
		changed := false
		for i := range relocations {
			rel := &relocations[i]
			if rel.Offset >= oldAddr && rel.Offset <= oldEnd {
				rel.Offset = rel.Offset - oldAddr + newAddr
				changed = true
			}
		}
		if changed {
			relaSec.SetRelocations(relocations)
		}
	}

	sec.Address = newAddr
}
