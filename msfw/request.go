package msfw

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
)

// Request holds the user supplied field values as text.
type Request struct {
	VID     string
	PID     string
	Version string
	Video   string
	Audio   string
	EDID    string
	Serial  string
}

// Fields is a validated Request, ready to be written into an image.
type Fields struct {
	VID     string
	PID     string
	Version string
	Video   string
	Audio   string
	EDID    []byte
	Serial  string
}

func checkHex(field string, value string, digits int) (string, error) {
	value = strings.ToLower(value)
	if len(value) != digits {
		return "", invalid(field, "expected %d hex digits, got %q", digits, value)
	}
	if _, err := hex.DecodeString(value); err != nil {
		return "", invalid(field, "%q is not hexadecimal", value)
	}
	return value, nil
}

func checkEDID(value string) ([]byte, error) {
	value = strings.ToLower(value)
	if len(value) != 2*edidLen {
		return nil, invalid("edid", "expected %d hex digits, got %d", 2*edidLen, len(value))
	}

	edid, err := hex.DecodeString(value)
	if err != nil {
		return nil, invalid("edid", "not hexadecimal: %v", err)
	}

	if !bytes.HasPrefix(edid, edidMagic) {
		return nil, invalid("edid", "header %s is not %s", hex.EncodeToString(edid[:len(edidMagic)]), hex.EncodeToString(edidMagic))
	}

	if sum := EDIDSum(edid); sum != 0 {
		return nil, invalid("edid", "checksum is %02x, must be 00", sum)
	}

	return edid, nil
}

// Parse validates the request against a profile. All problems are reported
// together; nothing is returned unless every field is valid.
func (r *Request) Parse(p *Profile) (*Fields, error) {
	var errs error
	var err error
	f := &Fields{
		Video:  r.Video,
		Audio:  r.Audio,
		Serial: r.Serial,
	}

	if r.Serial != "" && !p.SupportsSerial() {
		return nil, fmt.Errorf("%w: %s has no serial number descriptor", ErrorUnsupported, p.Name)
	}

	if f.VID, err = checkHex("vid", r.VID, 4); err != nil {
		errs = multierror.Append(errs, err)
	}
	if f.PID, err = checkHex("pid", r.PID, 4); err != nil {
		errs = multierror.Append(errs, err)
	}
	if f.Version, err = checkHex("firmware-version", r.Version, 8); err != nil {
		errs = multierror.Append(errs, err)
	}

	if len(r.Video) > p.DescriptorMax {
		errs = multierror.Append(errs, invalid("video", "%d bytes, at most %d allowed", len(r.Video), p.DescriptorMax))
	}
	if len(r.Audio) > p.DescriptorMax {
		errs = multierror.Append(errs, invalid("audio", "%d bytes, at most %d allowed", len(r.Audio), p.DescriptorMax))
	}

	if r.EDID != "" {
		if f.EDID, err = checkEDID(r.EDID); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if !utf8.ValidString(r.Serial) {
		errs = multierror.Append(errs, invalid("serial", "not valid UTF-8"))
	} else if n := utf8.RuneCountInString(r.Serial); n > serialChars {
		errs = multierror.Append(errs, invalid("serial", "%d characters, at most %d allowed", n, serialChars))
	}

	if errs != nil {
		return nil, errs
	}
	return f, nil
}
