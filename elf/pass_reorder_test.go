// SPDX-License-Identifier: MIT

package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildReorderFixture lays sections out in a deliberately scrambled input
// order so the test exercises the bucket reorder rather than a no-op.
func buildReorderFixture() *Elf {
	return &Elf{
		Sections: []*Section{
			{Name: "", Type: SHT_NULL},                                            // 0
			{Name: ".strtab", Type: SHT_STRTAB},                                    // 1
			{Name: ".rela.text", Type: SHT_RELA, Info: 4, Link: 1},                 // 2
			{Name: ".data", Type: SHT_PROGBITS, Flags: SHF_WRITE},                  // 3
			{Name: ".text", Type: SHT_PROGBITS, Flags: SHF_EXECINSTR},              // 4
			{Name: ".bss", Type: SHT_NOBITS},                                       // 5
			{Name: ".symtab", Type: SHT_SYMTAB, Link: 1},                          // 6
			{Name: ".rodata", Type: SHT_PROGBITS},                                  // 7
			{Name: ".shstrtab", Type: SHT_STRTAB},                                  // 8
		},
	}
}

func TestReorderSectionIndexBucketsByTypeAndFlags(t *testing.T) {
	e := buildReorderFixture()

	require.NoError(t, e.ReorderSectionIndex())

	names := make([]string, len(e.Sections))
	for i, s := range e.Sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"", ".text", ".rodata", ".data", ".bss", ".rela.text", ".strtab", ".symtab", ".shstrtab",
	}, names)
}

func TestReorderSectionIndexRemapsLinkAndInfo(t *testing.T) {
	e := buildReorderFixture()
	require.NoError(t, e.ReorderSectionIndex())

	rela := e.SectionByName(".rela.text")
	text := e.SectionByName(".text")
	symtab := e.SectionByName(".symtab")
	strtab := e.SectionByName(".strtab")

	assert.Equal(t, uint32(e.SectionIndex(text)), rela.Info, "RELA Info must point at .text's new index")
	assert.Equal(t, uint32(e.SectionIndex(strtab)), symtab.Link, ".symtab Link must point at .strtab's new index")
}

func TestReorderSectionIndexRemapsSymbolSectionIndex(t *testing.T) {
	e := buildReorderFixture()
	symtab := e.SectionByName(".symtab")
	symtab.SetSymbols([]Symbol{
		{Type: STT_SECTION, SectionIndex: 4}, // originally .text
	})

	require.NoError(t, e.ReorderSectionIndex())

	text := e.SectionByName(".text")
	symbols := e.SectionByName(".symtab").Symbols()
	require.Len(t, symbols, 1)
	assert.Equal(t, uint16(e.SectionIndex(text)), symbols[0].SectionIndex)
}

func TestReorderSectionIndexRejectsUnclassifiedType(t *testing.T) {
	e := &Elf{Sections: []*Section{
		{Type: SHT_NULL},
		{Type: SectionHeaderType(0x1234)},
	}}

	assert.Error(t, e.ReorderSectionIndex())
}
