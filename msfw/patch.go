package msfw

import (
	"encoding/binary"
	"fmt"
)

type LogFunc func(level int, format string, param ...interface{})

type Config struct {
	LogFunc LogFunc
}

func (c Config) log(level int, format string, param ...interface{}) {
	if c.LogFunc != nil {
		c.LogFunc(level, format, param...)
	}
}

// Patch validates req, applies it to a copy of base and fixes the checksums.
// base is never modified.
func Patch(p *Profile, base []byte, req Request, config Config) ([]byte, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	fields, err := req.Parse(p)
	if err != nil {
		return nil, err
	}

	im := NewImage(base)
	if err := fields.apply(p, im, config); err != nil {
		return nil, err
	}

	if err := FixImage(p, im.Bytes()); err != nil {
		return nil, err
	}

	out := im.Bytes()
	config.log(1, "Checksums: header %04x, code %04x",
		binary.BigEndian.Uint16(out[len(out)-trailerLen:]), binary.BigEndian.Uint16(out[len(out)-2:]))

	return out, nil
}

func (f *Fields) apply(p *Profile, im *Image, config Config) error {
	config.log(1, "Patching %s image (%d bytes)", p.Name, im.Len())

	if err := im.WriteHex("vid", p.VIDOffset, f.VID); err != nil {
		return err
	}
	if err := im.WriteHex("pid", p.PIDOffset, f.PID); err != nil {
		return err
	}
	config.log(2, "VID:PID %s:%s at %04x/%04x", f.VID, f.PID, p.VIDOffset, p.PIDOffset)

	if err := im.WriteHex("firmware-version", p.VersionOffset, f.Version); err != nil {
		return err
	}
	config.log(2, "Firmware version %s at %04x", f.Version, p.VersionOffset)

	if err := im.WriteLengthPrefixed("video", p.VideoOffset, f.Video); err != nil {
		return err
	}
	if err := im.WriteLengthPrefixed("audio", p.AudioOffset, f.Audio); err != nil {
		return err
	}
	config.log(2, "Descriptors: video %q, audio %q", f.Video, f.Audio)

	if f.EDID != nil {
		if err := im.WriteEDID(p.EDIDAnchor, f.EDID); err != nil {
			return err
		}
		config.log(2, "EDID replaced")
	}

	if f.Serial != "" {
		for i, anchor := range p.SerialAnchors {
			if err := im.WriteSerial(fmt.Sprintf("serial[%d]", i), anchor, f.Serial); err != nil {
				return err
			}
		}
		config.log(2, "Serial %q written to %d descriptors", f.Serial, len(p.SerialAnchors))
	}

	return nil
}
