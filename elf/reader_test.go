// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringTableBuilder assembles a NUL-terminated string table and hands back
// the byte offset each name was written at, mirroring how a linker builds
// .shstrtab/.strtab.
type stringTableBuilder struct {
	buf     bytes.Buffer
	offsets map[string]uint32
}

func newStringTableBuilder() *stringTableBuilder {
	b := &stringTableBuilder{offsets: make(map[string]uint32)}
	b.buf.WriteByte(0)
	return b
}

func (b *stringTableBuilder) add(name string) uint32 {
	if name == "" {
		return 0
	}
	offset := uint32(b.buf.Len())
	b.buf.WriteString(name)
	b.buf.WriteByte(0)
	b.offsets[name] = offset
	return offset
}

// buildMinimalElf constructs the S1 fixture from the spec: a NULL section,
// a 4-byte .text at CodeBaseAddress (a single PPC blr), a .symtab holding
// one null symbol, a .strtab holding a single NUL, and a .shstrtab,
// serialized as an on-disk ELF32 BE image.
func buildMinimalElf(t *testing.T) []byte {
	t.Helper()

	shstrtab := newStringTableBuilder()
	nullName := shstrtab.add("")
	textName := shstrtab.add(".text")
	symtabName := shstrtab.add(".symtab")
	strtabName := shstrtab.add(".strtab")
	shstrtabName := shstrtab.add(".shstrtab")

	textData := []byte{0x4E, 0x80, 0x00, 0x20}
	symtabData := make([]byte, symbolSize) // one null symbol
	strtabData := []byte{0}
	shstrtabData := shstrtab.buf.Bytes()

	type rawSection struct {
		name  uint32
		typ   SectionHeaderType
		flags SectionHeaderFlag
		addr  uint32
		link  uint32
		data  []byte
	}

	sections := []rawSection{
		{name: nullName, typ: SHT_NULL},
		{name: textName, typ: SHT_PROGBITS, flags: SHF_EXECINSTR | SHF_ALLOC, addr: CodeBaseAddress, data: textData},
		{name: symtabName, typ: SHT_SYMTAB, link: 3, data: symtabData},
		{name: strtabName, typ: SHT_STRTAB, data: strtabData},
		{name: shstrtabName, typ: SHT_STRTAB, data: shstrtabData},
	}

	const headerSize = elfHeaderSize
	secHdrOffset := alignUp(headerSize, 64)
	dataOffset := secHdrOffset + uint32(len(sections))*sectionHeaderSize

	// Compute each section's file offset up front so the header table
	// and the payload stream can each be built in one independent, linear pass.
	fileOffsets := make([]uint32, len(sections))
	offset := dataOffset
	for i, s := range sections {
		if !s.typ.HasDataInFile() || len(s.data) == 0 {
			continue
		}
		fileOffsets[i] = offset
		offset += uint32(len(s.data))
	}

	var buf bytes.Buffer

	ident := elfIdent{Magic: elfMagic, Class: uint8(ELFCLASS32), Endian: uint8(ELFDATA2MSB), Version: 1}
	require.NoError(t, binaryWrite(&buf, &ident))

	fh := elfHeader32{
		Type:            uint16(ET_EXEC),
		Machine:         uint16(EM_PPC),
		Version:         1,
		Entry:           CodeBaseAddress,
		SecHdrOff:       secHdrOffset,
		HeaderSize:      headerSize,
		SecHdrEntrySize: sectionHeaderSize,
		SecHdrCount:     uint16(len(sections)),
		SecHdrStrIndex:  4,
	}
	require.NoError(t, binaryWrite(&buf, &fh))

	buf.Write(make([]byte, secHdrOffset-uint32(buf.Len())))

	for i, s := range sections {
		sh := sectionHeader32{
			Name:      s.name,
			Type:      uint32(s.typ),
			Flags:     uint32(s.flags),
			Address:   s.addr,
			Offset:    fileOffsets[i],
			Size:      uint32(len(s.data)),
			Link:      s.link,
			AddrAlign: 1,
		}
		require.NoError(t, writeSectionHeader(&buf, sh))
	}

	for _, s := range sections {
		if !s.typ.HasDataInFile() || len(s.data) == 0 {
			continue
		}
		buf.Write(s.data)
	}

	return buf.Bytes()
}

func TestReadELFParsesMinimalFixture(t *testing.T) {
	raw := buildMinimalElf(t)

	e, err := ReadELF(bytes.NewReader(raw))
	require.NoError(t, err)

	require.Len(t, e.Sections, 5)
	assert.Equal(t, "", e.Sections[0].Name)
	assert.Equal(t, ".text", e.Sections[1].Name)
	assert.Equal(t, []byte{0x4E, 0x80, 0x00, 0x20}, e.Sections[1].Data)
	assert.Equal(t, ".symtab", e.Sections[2].Name)
	assert.Equal(t, ".strtab", e.Sections[3].Name)
	assert.Equal(t, ".shstrtab", e.Sections[4].Name)
	assert.Equal(t, uint16(4), e.ShStrIndex())
}

func TestReadELFRejectsWrongMachine(t *testing.T) {
	raw := buildMinimalElf(t)
	raw[16+2] = 0 // Machine field lives right after Type in elfHeader32
	raw[16+3] = 0

	_, err := ReadELF(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestReadELFRejectsWrongClass(t *testing.T) {
	raw := buildMinimalElf(t)
	raw[4] = 2 // ELFCLASS64

	_, err := ReadELF(bytes.NewReader(raw))
	assert.Error(t, err)
}
