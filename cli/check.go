package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/BertoldVdb/ms21xx-fwgen/msfw"
	"github.com/fatih/color"
)

type CheckCmd struct {
	Chip     *msfw.Profile `optional:"" type:"chip" default:"ms2130" help:"Chip the image was built for."`
	Filename string        `arg:"" name:"filename" help:"Firmware image to verify."`
}

func (l *CheckCmd) Run(c *Context) error {
	data, err := os.ReadFile(l.Filename)
	if err != nil {
		return err
	}

	if err := msfw.CheckImage(l.Chip, data); err != nil {
		return err
	}

	trailer := data[len(data)-4:]
	color.Green("Checksums OK (header %04x, code %04x).", binary.BigEndian.Uint16(trailer), binary.BigEndian.Uint16(trailer[2:]))

	if off, ok := msfw.NewImage(data).Find(l.Chip.EDIDAnchor); ok {
		fmt.Printf("EDID found at %04x.\n", off)
	}
	return nil
}
