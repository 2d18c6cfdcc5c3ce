// SPDX-License-Identifier: MIT

package elf

import (
	"fmt"
	"io"
)

// Convert runs the full ELF-to-RPX transformation pipeline (spec §2): read
// the input ELF, run each pass in its fixed order, and write the resulting
// RPX to w. Passes run in the order the spec's data-flow line gives them;
// the first failing pass aborts the conversion immediately rather than
// continuing with partially-transformed state.
func Convert(r io.ReadSeeker, w io.WriteSeeker) error {
	e, err := ReadELF(r)
	if err != nil {
		return err
	}

	passes := []struct {
		name string
		run  func() error
	}{
		{"fixBssNoBits", e.FixBssNoBits},
		{"reorderSectionIndex", e.ReorderSectionIndex},
		{"fixRelocations", e.FixRelocations},
		{"fixSectionAlign", e.FixSectionAlign},
		{"fixLoaderVirtualAddresses", e.FixLoaderVirtualAddresses},
		{"generateFileInfoSection", e.GenerateFileInfoSection},
		{"generateCrcSection", e.GenerateCrcSection},
		{"fixFileHeader", e.FixFileHeader},
		{"deflateSections", e.DeflateSections},
		{"calculateSectionOffsets", e.CalculateSectionOffsets},
	}

	for _, p := range passes {
		if err := p.run(); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}

	return e.Write(w)
}
