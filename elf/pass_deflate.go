// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"compress/zlib"
	"fmt"
)

// DeflateSections compresses section payloads in place (spec §4.11).
// RPL_CRCS and RPL_FILEINFO are never compressed — the loader reads both
// before it has set up decompression, and CRCS in particular is the
// integrity check deflate would need to already trust. Any other section
// whose payload is at least deflateMinSectionSize bytes is replaced by a
// 4-byte big-endian original-size prefix followed by its zlib (RFC 1950,
// not raw DEFLATE) stream at compression level 6, and gains SHF_DEFLATED.
//
// Sections smaller than the threshold are left alone.
func (e *Elf) DeflateSections() error {
	for _, sec := range e.Sections {
		if sec.Type == SHT_RPL_CRCS || sec.Type == SHT_RPL_FILEINFO {
			continue
		}
		if len(sec.Data) < deflateMinSectionSize {
			continue
		}

		var buf bytes.Buffer
		header := make([]byte, 4)
		byteOrder.PutUint32(header, uint32(len(sec.Data)))
		buf.Write(header)

		zw, err := zlib.NewWriterLevel(&buf, 6)
		if err != nil {
			return fmt.Errorf("deflate section %q: %w", sec.Name, err)
		}
		if _, err := zw.Write(sec.Data); err != nil {
			return fmt.Errorf("deflate section %q: %w", sec.Name, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("deflate section %q: %w", sec.Name, err)
		}

		sec.Data = buf.Bytes()
		sec.Flags |= SHF_DEFLATED
	}

	return nil
}
