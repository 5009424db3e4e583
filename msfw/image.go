package msfw

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Image is an exclusively owned firmware buffer. Writes are bounds checked
// and may not overlap a range already written by another field. Anchors are
// searched in the unmodified base.
type Image struct {
	base    []byte
	buf     []byte
	claimed []fieldRange
}

func NewImage(base []byte) *Image {
	im := &Image{
		base: base,
		buf:  append([]byte(nil), base...),
	}

	if len(im.buf) >= trailerLen {
		im.claimed = append(im.claimed, fieldRange{"checksum", len(im.buf) - trailerLen, trailerLen})
	}
	return im
}

func (im *Image) Bytes() []byte {
	return im.buf
}

func (im *Image) Len() int {
	return len(im.buf)
}

func (im *Image) write(field string, offset int, data []byte) error {
	f := fieldRange{field, offset, len(data)}
	if offset < 0 || offset+len(data) > len(im.buf) {
		return &OutOfBoundsError{Field: field, Offset: offset, Length: len(data), Size: len(im.buf)}
	}

	for _, c := range im.claimed {
		if c.name != field && c.overlaps(f) {
			return &OverlapError{Field: field, Other: c.name}
		}
	}

	copy(im.buf[offset:], data)
	im.claimed = append(im.claimed, f)
	return nil
}

func (im *Image) WriteHex(field string, offset int, digits string) error {
	if len(digits)%2 != 0 {
		return invalid(field, "odd number of hex digits")
	}

	value, err := hex.DecodeString(digits)
	if err != nil {
		return invalid(field, "%v", err)
	}

	return im.write(field, offset, value)
}

// WriteLengthPrefixed writes a one byte length (text length + 1) followed by the text.
func (im *Image) WriteLengthPrefixed(field string, offset int, text string) error {
	if len(text)+1 > 0xff {
		return invalid(field, "%d bytes do not fit a length byte", len(text))
	}

	data := make([]byte, 0, len(text)+1)
	data = append(data, byte(len(text)+1))
	data = append(data, text...)
	return im.write(field, offset, data)
}

// Find returns the offset of the first occurrence of pattern in the base image.
func (im *Image) Find(pattern []byte) (int, bool) {
	if len(pattern) == 0 {
		return 0, false
	}

	i := bytes.Index(im.base, pattern)
	return i, i >= 0
}

func (im *Image) WriteEDID(anchor []byte, edid []byte) error {
	offset, ok := im.Find(anchor)
	if !ok {
		return &PatternNotFoundError{Field: "edid", Pattern: anchor}
	}

	return im.write("edid", offset, edid)
}

func encodeUTF16LE(s string) ([]byte, error) {
	text, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(s)
	return []byte(text), err
}

// WriteSerial replaces the USB string descriptor that follows anchor.
func (im *Image) WriteSerial(field string, anchor []byte, serial string) error {
	offset, ok := im.Find(anchor)
	if !ok {
		return &PatternNotFoundError{Field: field, Pattern: anchor}
	}

	text, err := encodeUTF16LE(serial)
	if err != nil {
		return invalid(field, "%v", err)
	}
	if len(text)+2 > 0xff {
		return invalid(field, "descriptor of %d bytes too long", len(text)+2)
	}

	data := make([]byte, 0, len(text)+2)
	data = append(data, byte(len(text)+2), descriptorTypeString)
	data = append(data, text...)

	if err := im.write(field, offset+len(anchor), data); err != nil {
		return fmt.Errorf("serial descriptor at %04x: %w", offset, err)
	}
	return nil
}
