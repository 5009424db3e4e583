package main

import (
	"fmt"

	"github.com/BertoldVdb/ms21xx-fwgen/msfw"
)

type ProfilesCmd struct {
}

func formatRanges(ranges ...msfw.Range) string {
	var result string
	for i, r := range ranges {
		if i > 0 {
			result += "+"
		}
		result += fmt.Sprintf("[%d:%d]", r.Start, r.End)
	}
	return result
}

func (l *ProfilesCmd) Run(c *Context) error {
	fmt.Printf("Chip   |  VID |  PID |  Ver | Video | Audio | Serials | Header sum      | Code sum\n")

	for _, name := range msfw.ProfileNames() {
		p := msfw.Profiles[name]
		fmt.Printf("%-7s| %04x | %04x | %04x |  %04x |  %04x | %7d | %-16s| %s\n",
			p.Name, p.VIDOffset, p.PIDOffset, p.VersionOffset, p.VideoOffset, p.AudioOffset,
			len(p.SerialAnchors), formatRanges(p.HeaderRanges...), formatRanges(p.CodeRange))
	}
	return nil
}
