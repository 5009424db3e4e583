package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/BertoldVdb/ms21xx-fwgen/msfw"
	"github.com/fatih/color"
	"github.com/golang/glog"
)

type GenerateCmd struct {
	Chip   *msfw.Profile `optional:"" type:"chip" default:"ms2130" help:"Chip to generate firmware for (ms2109, ms2130)."`
	Output string        `optional:"" default:"output.bin" help:"File to write the firmware to."`
	Base   string        `optional:"" help:"Base firmware image, overrides the search path."`

	VID             string `optional:"" name:"vid" default:"ffff" help:"The USB Vendor ID (4 hex digits)."`
	PID             string `optional:"" name:"pid" default:"ffff" help:"The USB Product ID (4 hex digits)."`
	FirmwareVersion string `optional:"" name:"firmware-version" default:"ffffffff" help:"Firmware version (8 hex digits)."`
	Video           string `optional:"" default:"USB Video" help:"Video device name, at most 15 bytes."`
	Audio           string `optional:"" default:"USB Audio" help:"Audio device name, at most 15 bytes."`
	EDID            string `optional:"" name:"edid" help:"EDID as 512 hex digits."`
	EDIDFile        string `optional:"" name:"edid-file" help:"File holding a 256 byte binary EDID."`
	Serial          string `optional:"" help:"USB serial number, at most 30 characters (ms2130 only)."`

	ShowChanges bool `optional:"" name:"show-changes" help:"Dump the bytes that were modified."`
}

func (g *GenerateCmd) request() (msfw.Request, error) {
	req := msfw.Request{
		VID:     g.VID,
		PID:     g.PID,
		Version: g.FirmwareVersion,
		Video:   g.Video,
		Audio:   g.Audio,
		EDID:    g.EDID,
		Serial:  g.Serial,
	}

	if g.EDIDFile != "" {
		if g.EDID != "" {
			return req, errors.New("--edid and --edid-file are mutually exclusive")
		}
		edid, err := os.ReadFile(g.EDIDFile)
		if err != nil {
			return req, err
		}
		req.EDID = hex.EncodeToString(edid)
	}

	return req, nil
}

func (g *GenerateCmd) Run(c *Context) error {
	req, err := g.request()
	if err != nil {
		return err
	}

	/* Catch bad input before touching the filesystem */
	if _, err := req.Parse(g.Chip); err != nil {
		return err
	}

	base, err := loadBase(g.Chip, g.Base)
	if err != nil {
		return err
	}

	out, err := msfw.Patch(g.Chip, base, req, c.config)
	if err != nil {
		return err
	}

	if g.ShowChanges {
		fmt.Print(hexdiff(base, out))
	}

	if err := writeOutput(g.Output, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	glog.V(1).Infof("Wrote %d bytes to %s", len(out), g.Output)
	color.Green("Generated %s firmware: %s", g.Chip.Name, g.Output)
	return nil
}
