package msfw

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a half-open byte range. An End <= 0 is relative to the end of the image.
type Range struct {
	Start int
	End   int
}

func (r Range) resolve(size int) (int, int) {
	end := r.End
	if end <= 0 {
		end += size
	}
	return r.Start, end
}

const (
	headerLen   = 0x30
	trailerLen  = 4
	edidLen     = 256
	serialChars = 30

	descriptorTypeString = 0x03
)

var edidMagic = []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

type Profile struct {
	Name      string
	BaseImage string

	VIDOffset     int
	PIDOffset     int
	VersionOffset int
	VideoOffset   int
	AudioOffset   int
	DescriptorMax int

	EDIDAnchor    []byte
	SerialAnchors [][]byte

	HeaderRanges []Range
	CodeRange    Range
}

var Profiles = map[string]*Profile{
	"ms2109": {
		Name:      "ms2109",
		BaseImage: "ms2109.bin",

		VIDOffset:     0x06,
		PIDOffset:     0x08,
		VersionOffset: 0x0c,
		VideoOffset:   0x10,
		AudioOffset:   0x20,
		DescriptorMax: 15,

		EDIDAnchor: edidMagic,

		HeaderRanges: []Range{{2, headerLen}},
		CodeRange:    Range{headerLen, -trailerLen},
	},
	"ms2130": {
		Name:      "ms2130",
		BaseImage: "ms2130.bin",

		VIDOffset:     0x04,
		PIDOffset:     0x06,
		VersionOffset: 0x0c,
		VideoOffset:   0x10,
		AudioOffset:   0x20,
		DescriptorMax: 15,

		EDIDAnchor: edidMagic,
		SerialAnchors: [][]byte{
			{0x60, 0x40, 0x21, 0x20},
			{0x60, 0x40, 0x21, 0x60},
		},

		/* 10..16 is not covered by the header sum on this chip */
		HeaderRanges: []Range{{2, 10}, {16, headerLen}},
		CodeRange:    Range{headerLen, -trailerLen},
	},
}

func ProfileByName(name string) (*Profile, error) {
	p, ok := Profiles[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrorUnknownChip, name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

func ProfileNames() []string {
	var names []string
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Profile) SupportsSerial() bool {
	return len(p.SerialAnchors) > 0
}

type fieldRange struct {
	name   string
	offset int
	length int
}

func (f fieldRange) overlaps(o fieldRange) bool {
	return f.offset < o.offset+o.length && o.offset < f.offset+f.length
}

func (p *Profile) fixedFields() []fieldRange {
	return []fieldRange{
		{"vid", p.VIDOffset, 2},
		{"pid", p.PIDOffset, 2},
		{"firmware-version", p.VersionOffset, 4},
		{"video", p.VideoOffset, p.DescriptorMax + 1},
		{"audio", p.AudioOffset, p.DescriptorMax + 1},
	}
}

// Check verifies that the fixed fields of the profile fit in the header
// and do not overlap each other.
func (p *Profile) Check() error {
	fields := p.fixedFields()
	for i, f := range fields {
		if f.offset < 0 || f.offset+f.length > headerLen {
			return &OutOfBoundsError{Field: f.name, Offset: f.offset, Length: f.length, Size: headerLen}
		}
		for _, o := range fields[:i] {
			if f.overlaps(o) {
				return &OverlapError{Field: f.name, Other: o.name}
			}
		}
	}

	for _, r := range append(append([]Range(nil), p.HeaderRanges...), p.CodeRange) {
		start, end := r.resolve(headerLen + trailerLen)
		if start < 0 || start > end {
			return fmt.Errorf("%s: invalid checksum range %d:%d", p.Name, r.Start, r.End)
		}
	}

	if len(p.EDIDAnchor) == 0 {
		return fmt.Errorf("%s: empty EDID anchor", p.Name)
	}
	for _, a := range p.SerialAnchors {
		if len(a) == 0 {
			return fmt.Errorf("%s: empty serial anchor", p.Name)
		}
	}

	return nil
}
