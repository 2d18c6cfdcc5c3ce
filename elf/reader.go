// SPDX-License-Identifier: MIT

package elf

import (
	"fmt"
	"io"
)

// ReadELF parses an on-disk ELF32 big-endian PowerPC executable into an
// in-memory Elf value (spec §4.2). It validates the identification fields
// the RPX loader requires and fails with the observed-vs-expected values
// on any mismatch (spec §7 error kind 2).
func ReadELF(r io.ReadSeeker) (*Elf, error) {
	e := &Elf{}

	if err := e.readHeader(r); err != nil {
		return nil, fmt.Errorf("reading ELF header: %w", err)
	}

	if _, err := r.Seek(int64(e.secHdrOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to section headers: %w", err)
	}

	for i := 0; i < int(e.secHdrCount); i++ {
		sh, err := readSectionHeader(r)
		if err != nil {
			return nil, fmt.Errorf("reading section header %d: %w", i, err)
		}

		e.Sections = append(e.Sections, &Section{
			nameOffset: sh.Name,
			Type:       SectionHeaderType(sh.Type),
			Flags:      SectionHeaderFlag(sh.Flags),
			Address:    sh.Address,
			offset:     sh.Offset,
			Size:       sh.Size,
			Link:       sh.Link,
			Info:       sh.Info,
			AddrAlign:  sh.AddrAlign,
			EntrySize:  sh.EntrySize,
		})
	}

	// Read section payloads: saves and restores the stream position so
	// sections can be read in header order regardless of on-disk layout.
	for i, sec := range e.Sections {
		if sec.Size == 0 || !sec.Type.HasDataInFile() {
			continue
		}

		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}

		if _, err := r.Seek(int64(sec.offset), io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking to section %d data: %w", i, err)
		}
		sec.Data = make([]byte, sec.Size)
		if _, err := io.ReadFull(r, sec.Data); err != nil {
			return nil, fmt.Errorf("reading section %d data: %w", i, err)
		}

		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}
	}

	if err := e.resolveSectionNames(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Elf) readHeader(r io.ReadSeeker) error {
	var ident elfIdent
	if err := binaryRead(r, &ident); err != nil {
		return err
	}

	if ident.Magic != elfMagic {
		return fmt.Errorf("invalid magic %v, expected %v", ident.Magic, elfMagic)
	}
	if FileClass(ident.Class) != ELFCLASS32 {
		return fmt.Errorf("unexpected ELF class %d, expected %d (ELFCLASS32)", ident.Class, ELFCLASS32)
	}
	if FileEndian(ident.Endian) != ELFDATA2MSB {
		return fmt.Errorf("unexpected ELF encoding %d, expected %d (ELFDATA2MSB)", ident.Endian, ELFDATA2MSB)
	}

	e.Class = FileClass(ident.Class)
	e.Endian = FileEndian(ident.Endian)
	e.Version = ident.Version
	e.ABI = FileABI(ident.ABI)

	var fh elfHeader32
	if err := binaryRead(r, &fh); err != nil {
		return err
	}

	if MachineType(fh.Machine) != EM_PPC {
		return fmt.Errorf("unexpected ELF machine type %d, expected %d (EM_PPC)", fh.Machine, EM_PPC)
	}
	if fh.Version != 1 {
		return fmt.Errorf("unexpected ELF version %d, expected 1", fh.Version)
	}

	e.Type = FileType(fh.Type)
	e.Machine = MachineType(fh.Machine)
	e.EVersion = fh.Version
	e.Entry = fh.Entry
	e.progHdrOffset = fh.ProgHdrOff
	e.secHdrOffset = fh.SecHdrOff
	e.Flags = fh.Flags
	e.headerSize = fh.HeaderSize
	e.progHdrEntrySize = fh.ProgHdrEntrySize
	e.progHdrCount = fh.ProgHdrCount
	e.secHdrEntrySize = fh.SecHdrEntrySize
	e.secHdrCount = fh.SecHdrCount
	e.secHdrStrIndex = fh.SecHdrStrIndex

	if e.secHdrStrIndex == SHN_XINDEX {
		return fmt.Errorf("extended section index (SHN_XINDEX) is not supported")
	}

	return nil
}

func (e *Elf) resolveSectionNames() error {
	if int(e.secHdrStrIndex) >= len(e.Sections) {
		return fmt.Errorf("shstrndx %d out of range (%d sections)", e.secHdrStrIndex, len(e.Sections))
	}

	shstrtab := e.Sections[e.secHdrStrIndex]
	for _, sec := range e.Sections {
		name, err := readCStringAt(shstrtab.Data, sec.nameOffset)
		if err != nil {
			return fmt.Errorf("resolving section name: %w", err)
		}
		sec.Name = name
	}
	return nil
}

// readCStringAt reads a NUL-terminated string out of a string-table byte
// slice at the given offset.
func readCStringAt(data []byte, offset uint32) (string, error) {
	if int(offset) > len(data) {
		return "", fmt.Errorf("string offset %d out of range (table size %d)", offset, len(data))
	}
	end := int(offset)
	for end < len(data) && data[end] != 0 {
		end++
	}
	return string(data[offset:end]), nil
}

// SectionByName returns the first section with the given name, or nil.
func (e *Elf) SectionByName(name string) *Section {
	for _, sec := range e.Sections {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}

// SectionByType returns the first section of the given type, or nil.
func (e *Elf) SectionByType(t SectionHeaderType) *Section {
	for _, sec := range e.Sections {
		if sec.Type == t {
			return sec
		}
	}
	return nil
}

// SectionIndex returns the index of sec within e.Sections, or -1.
func (e *Elf) SectionIndex(sec *Section) int {
	for i, s := range e.Sections {
		if s == sec {
			return i
		}
	}
	return -1
}
