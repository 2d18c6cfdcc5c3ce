// SPDX-License-Identifier: MIT

package elf

import "hash/crc32"

// GenerateCrcSection appends the synthesized SHT_RPL_CRCS section (spec
// §4.9): one big-endian uint32 zlib CRC-32 per section, computed over that
// section's payload in current section-sequence order (an empty payload
// CRCs to 0). A 0 is inserted at the second-to-last position of the list —
// the loader reserves that slot for the CRCS section's own entry, which
// cannot be known until the section itself exists.
//
// The new section is inserted immediately before the final section (the
// RPL_FILEINFO section appended by GenerateFileInfoSection), not appended
// after it: RPL_FILEINFO must stay last.
func (e *Elf) GenerateCrcSection() error {
	crcs := make([]uint32, 0, len(e.Sections)+1)
	for _, sec := range e.Sections {
		if len(sec.Data) == 0 {
			crcs = append(crcs, 0)
			continue
		}
		crcs = append(crcs, crc32.ChecksumIEEE(sec.Data))
	}

	insertAt := len(crcs) - 1
	if insertAt < 0 {
		insertAt = 0
	}
	crcs = append(crcs, 0)
	copy(crcs[insertAt+1:], crcs[insertAt:])
	crcs[insertAt] = 0

	data := make([]byte, 4*len(crcs))
	for i, v := range crcs {
		byteOrder.PutUint32(data[i*4:], v)
	}

	crcSection := &Section{
		Type:      SHT_RPL_CRCS,
		AddrAlign: 4,
		EntrySize: 4,
		Data:      data,
	}

	n := len(e.Sections)
	e.Sections = append(e.Sections, nil)
	copy(e.Sections[n-1+1:], e.Sections[n-1:])
	e.Sections[n-1] = crcSection

	return nil
}
