// SPDX-License-Identifier: MIT

package elf

import (
	"fmt"
	"io"
)

// Write serializes e to w in final RPX form (spec §4.13): the file header
// at offset 0, the section header table at secHdrOffset, then every
// section with a non-empty payload at its own offset. Write assumes
// FixFileHeader and CalculateSectionOffsets have already run — it lays out
// nothing itself, only encodes the layout already recorded on e.
//
// w must support Seek because sections are written at their assigned
// offsets rather than back-to-back; gaps left by alignment padding are
// never explicitly zero-filled, matching the reference tool's behavior of
// only ever seeking forward to a known offset before each write.
func (e *Elf) Write(w io.WriteSeeker) error {
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to file header: %w", err)
	}
	if err := e.writeHeader(w); err != nil {
		return fmt.Errorf("writing file header: %w", err)
	}

	if _, err := w.Seek(int64(e.secHdrOffset), io.SeekStart); err != nil {
		return fmt.Errorf("seeking to section headers: %w", err)
	}
	for i, sec := range e.Sections {
		sh := sectionHeader32{
			Name:      sec.nameOffset,
			Type:      uint32(sec.Type),
			Flags:     uint32(sec.Flags),
			Address:   sec.Address,
			Offset:    sec.offset,
			Size:      sec.Size,
			Link:      sec.Link,
			Info:      sec.Info,
			AddrAlign: sec.AddrAlign,
			EntrySize: sec.EntrySize,
		}
		if err := writeSectionHeader(w, sh); err != nil {
			return fmt.Errorf("writing section header %d: %w", i, err)
		}
	}

	for i, sec := range e.Sections {
		if len(sec.Data) == 0 {
			continue
		}
		if _, err := w.Seek(int64(sec.offset), io.SeekStart); err != nil {
			return fmt.Errorf("seeking to section %d data: %w", i, err)
		}
		if _, err := w.Write(sec.Data); err != nil {
			return fmt.Errorf("writing section %d data: %w", i, err)
		}
	}

	return nil
}

func (e *Elf) writeHeader(w io.Writer) error {
	ident := elfIdent{
		Magic:   elfMagic,
		Class:   uint8(e.Class),
		Endian:  uint8(e.Endian),
		Version: e.Version,
		ABI:     uint16(e.ABI),
	}
	if err := binaryWrite(w, &ident); err != nil {
		return err
	}

	fh := elfHeader32{
		Type:             uint16(e.Type),
		Machine:          uint16(e.Machine),
		Version:          e.EVersion,
		Entry:            e.Entry,
		ProgHdrOff:       e.progHdrOffset,
		SecHdrOff:        e.secHdrOffset,
		Flags:            e.Flags,
		HeaderSize:       e.headerSize,
		ProgHdrEntrySize: e.progHdrEntrySize,
		ProgHdrCount:     e.progHdrCount,
		SecHdrEntrySize:  e.secHdrEntrySize,
		SecHdrCount:      e.secHdrCount,
		SecHdrStrIndex:   e.secHdrStrIndex,
	}
	return binaryWrite(w, &fh)
}
