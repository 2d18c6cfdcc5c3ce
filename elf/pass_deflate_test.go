// SPDX-License-Identifier: MIT

package elf

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeflateSectionsCompressesLargeSections(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, deflateMinSectionSize)
	sec := &Section{Type: SHT_PROGBITS, Data: payload}
	e := &Elf{Sections: []*Section{sec}}

	require.NoError(t, e.DeflateSections())

	assert.NotZero(t, sec.Flags&SHF_DEFLATED)
	require.True(t, len(sec.Data) >= 4)
	assert.Equal(t, uint32(len(payload)), byteOrder.Uint32(sec.Data[:4]))

	zr, err := zlib.NewReader(bytes.NewReader(sec.Data[4:]))
	require.NoError(t, err)
	inflated, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, payload, inflated)
}

func TestDeflateSectionsSkipsSmallAndReservedSections(t *testing.T) {
	small := &Section{Type: SHT_PROGBITS, Data: []byte{1, 2, 3}}
	crcs := &Section{Type: SHT_RPL_CRCS, Data: bytes.Repeat([]byte{0}, deflateMinSectionSize*2)}
	fileinfo := &Section{Type: SHT_RPL_FILEINFO, Data: bytes.Repeat([]byte{0}, deflateMinSectionSize*2)}
	e := &Elf{Sections: []*Section{small, crcs, fileinfo}}

	require.NoError(t, e.DeflateSections())

	assert.Zero(t, small.Flags&SHF_DEFLATED)
	assert.Zero(t, crcs.Flags&SHF_DEFLATED)
	assert.Zero(t, fileinfo.Flags&SHF_DEFLATED)
}
