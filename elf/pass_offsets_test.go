// SPDX-License-Identifier: MIT

package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSectionOffsetsOrdersByGroup(t *testing.T) {
	crcs := &Section{Type: SHT_RPL_CRCS, Data: make([]byte, 8)}
	fileinfo := &Section{Type: SHT_RPL_FILEINFO, Data: make([]byte, 16)}
	rodata := &Section{Type: SHT_PROGBITS, Data: make([]byte, 4)}
	text := &Section{Type: SHT_PROGBITS, Flags: SHF_EXECINSTR, Data: make([]byte, 4)}
	bss := &Section{Type: SHT_NOBITS, Size: 100}
	rela := &Section{Type: SHT_RELA, Data: make([]byte, 12)}

	e := &Elf{Sections: []*Section{crcs, fileinfo, rodata, text, bss, rela}}
	e.secHdrOffset = 64

	require.NoError(t, e.CalculateSectionOffsets())

	base := e.secHdrOffset + alignUp(uint32(len(e.Sections))*sectionHeaderSize, 64)

	assert.Equal(t, base, crcs.offset)
	assert.Equal(t, base+8, fileinfo.offset)
	assert.Equal(t, base+8+16, rodata.offset)
	assert.Equal(t, base+8+16+4, text.offset, "code PROGBITS is placed after data PROGBITS and symtab/strtab groups")
	assert.Zero(t, bss.offset, "NOBITS never gets a file offset")
	assert.Equal(t, uint32(100), bss.Size, "NOBITS retains its original Size")
	assert.Equal(t, base+8+16+4+4, rela.offset)
}
