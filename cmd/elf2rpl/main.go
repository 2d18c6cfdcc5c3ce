// SPDX-License-Identifier: MIT

// Command elf2rpl converts a statically linked ELF32 big-endian PowerPC
// executable into the RPX container the Wii U loader expects.
package main

import (
	"fmt"
	"os"

	"github.com/Supercrafter008/wut/elf"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <source.elf> <destination.rpx>\n", os.Args[0])
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, "elf2rpl:", err)
		os.Exit(1)
	}
}

func run(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if err := elf.Convert(in, out); err != nil {
		os.Remove(dst)
		return err
	}

	return nil
}
