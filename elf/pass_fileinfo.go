// SPDX-License-Identifier: MIT

package elf

import "bytes"

// GenerateFileInfoSection appends the synthesized SHT_RPL_FILEINFO section
// (spec §4.8): a single RplFileInfo record whose constant fields are
// fixed, and whose textSize/dataSize/loadSize/tempSize are derived from
// the current section layout.
//
// Segment sizes are the maximum (addr+size-base) seen over sections
// placed in each of the code/data/load address ranges (spec §3). Sections
// still sitting at address 0 that aren't themselves RPL_CRCS or
// RPL_FILEINFO are link-only leftovers (symtab/strtab prior to the
// loader-address pass having nowhere to put them, or similar); each
// contributes size+128 to tempSize, the loader's scratch-region sizing
// hint.
func (e *Elf) GenerateFileInfoSection() error {
	info := RplFileInfo{
		Version:          RplFileInfoVersion,
		TextAlign:        RplTextAlign,
		DataAlign:        RplDataAlign,
		LoadAlign:        RplLoadAlign,
		StackSize:        RplStackSize,
		HeapSize:         RplHeapSize,
		Flags:            RPL_IS_RPX,
		MinVersion:       RplMinimumVersion,
		CompressionLevel: RplCompressionLevel,
		SdkVersion:       RplSdkVersion,
		SdkRevision:      RplSdkRevision,
	}

	for _, sec := range e.Sections {
		size := sec.EffectiveSize()
		addr := sec.Address

		switch {
		case addr >= CodeBaseAddress && addr < DataBaseAddress:
			if v := addr + size - CodeBaseAddress; v > info.TextSize {
				info.TextSize = v
			}
		case addr >= DataBaseAddress && addr < LoadBaseAddress:
			if v := addr + size - DataBaseAddress; v > info.DataSize {
				info.DataSize = v
			}
		case addr >= LoadBaseAddress:
			if v := addr + size - LoadBaseAddress; v > info.LoadSize {
				info.LoadSize = v
			}
		case addr == 0 && sec.Type != SHT_RPL_CRCS && sec.Type != SHT_RPL_FILEINFO:
			info.TempSize += size + 128
		}
	}

	info.TextSize = alignUp(info.TextSize, info.TextAlign)
	info.DataSize = alignUp(info.DataSize, info.DataAlign)
	info.LoadSize = alignUp(info.LoadSize, info.LoadAlign)

	var buf bytes.Buffer
	_ = binaryWrite(&buf, &info)

	e.Sections = append(e.Sections, &Section{
		Type:      SHT_RPL_FILEINFO,
		AddrAlign: 4,
		Data:      buf.Bytes(),
	})

	return nil
}
