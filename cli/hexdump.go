package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const hexdumpWidth = 32

func hexdumpRow(offset int, data []byte, mark []bool) string {
	red := color.New(color.FgRed)

	var workHex strings.Builder
	var workAscii strings.Builder
	for i := 0; i < hexdumpWidth; i++ {
		if i >= len(data) {
			workHex.WriteString("   ")
			workAscii.WriteString(" ")
		} else {
			m := data[i]
			delta := mark != nil && mark[i]

			c := m
			if c < 32 || c > 126 {
				c = '.'
			}

			if delta {
				workHex.WriteString(red.Sprintf("%02x ", m))
				workAscii.WriteString(red.Sprintf("%c", c))
			} else {
				fmt.Fprintf(&workHex, "%02x ", m)
				fmt.Fprintf(&workAscii, "%c", c)
			}
		}
		if i%8 == 7 {
			workHex.WriteString(" ")
		}
	}

	return fmt.Sprintf("%08x  %s|%s|\n", offset, workHex.String(), workAscii.String())
}

// hexdiff dumps the rows of b that differ from a, changed bytes in red.
// Bytes past the end of a count as changed.
func hexdiff(a, b []byte) string {
	var result strings.Builder
	skipped := false

	for offset := 0; offset < len(b); offset += hexdumpWidth {
		end := offset + hexdumpWidth
		if end > len(b) {
			end = len(b)
		}

		mark := make([]bool, end-offset)
		changed := false
		for i := offset; i < end; i++ {
			if i >= len(a) || a[i] != b[i] {
				mark[i-offset] = true
				changed = true
			}
		}

		if !changed {
			skipped = true
			continue
		}
		if skipped && result.Len() > 0 {
			result.WriteString("*\n")
		}
		skipped = false
		result.WriteString(hexdumpRow(offset, b[offset:end], mark))
	}

	if result.Len() == 0 {
		return "No differences.\n"
	}
	return result.String()
}
