package msfw

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchMS2130(t *testing.T) {
	p := Profiles["ms2130"]
	base := testBase(p)
	orig := append([]byte(nil), base...)

	out, err := Patch(p, base, testRequest(), Config{})
	require.NoError(t, err)
	require.Equal(t, orig, base)

	require.Len(t, out, len(base))
	require.Equal(t, []byte{0x12, 0x34}, out[4:6])
	require.Equal(t, []byte{0x56, 0x78}, out[6:8])
	require.Equal(t, []byte{0x00, 0x01, 0xab, 0xcd}, out[0x0c:0x10])
	require.Equal(t, append([]byte{10}, "Cap Video"...), out[0x10:0x1a])
	require.Equal(t, append([]byte{10}, "Cap Audio"...), out[0x20:0x2a])

	var hdr uint16
	for _, b := range out[2:10] {
		hdr += uint16(b)
	}
	for _, b := range out[16:48] {
		hdr += uint16(b)
	}
	var code uint16
	for _, b := range out[48 : len(out)-4] {
		code += uint16(b)
	}
	require.Equal(t, hdr, binary.BigEndian.Uint16(out[len(out)-4:]))
	require.Equal(t, code, binary.BigEndian.Uint16(out[len(out)-2:]))
}

func TestPatchMS2109Offsets(t *testing.T) {
	p := Profiles["ms2109"]

	out, err := Patch(p, testBase(p), testRequest(), Config{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34}, out[6:8])
	require.Equal(t, []byte{0x56, 0x78}, out[8:10])
	require.Equal(t, []byte{0x00, 0x01, 0xab, 0xcd}, out[0x0c:0x10])
	require.Equal(t, byte(len("Cap Video")+1), out[0x10])
	require.Equal(t, "Cap Video", string(out[0x11:0x11+len("Cap Video")]))
	require.Equal(t, byte(len("Cap Audio")+1), out[0x20])
	require.Equal(t, "Cap Audio", string(out[0x21:0x21+len("Cap Audio")]))
	require.NoError(t, CheckImage(p, out))
}

func TestPatchOnlyTouchesFields(t *testing.T) {
	vids := []string{"0000", "ffff", "534d", "A0b1"}

	for _, name := range ProfileNames() {
		p := Profiles[name]
		base := testBase(p)

		for _, vid := range vids {
			t.Run(fmt.Sprintf("%s/%s", name, vid), func(t *testing.T) {
				req := testRequest()
				req.VID = vid
				req.PID = vid

				out, err := Patch(p, base, req, Config{})
				require.NoError(t, err)

				want, _ := hex.DecodeString(vid)
				require.Equal(t, want, out[p.VIDOffset:p.VIDOffset+2])
				require.Equal(t, want, out[p.PIDOffset:p.PIDOffset+2])

				allowed := []fieldRange{
					{"vid", p.VIDOffset, 2},
					{"pid", p.PIDOffset, 2},
					{"firmware-version", p.VersionOffset, 4},
					{"video", p.VideoOffset, len(req.Video) + 1},
					{"audio", p.AudioOffset, len(req.Audio) + 1},
					{"checksum", len(out) - 4, 4},
				}
				for i := range out {
					if out[i] == base[i] {
						continue
					}
					inside := false
					for _, a := range allowed {
						inside = inside || a.overlaps(fieldRange{"", i, 1})
					}
					require.True(t, inside, "unexpected change at %04x", i)
				}
			})
		}
	}
}

func TestPatchChecksumStable(t *testing.T) {
	p := Profiles["ms2130"]

	out, err := Patch(p, testBase(p), testRequest(), Config{})
	require.NoError(t, err)
	require.NoError(t, CheckImage(p, out))

	again := append([]byte(nil), out...)
	require.NoError(t, FixImage(p, again))
	require.Equal(t, out, again)
}

func TestPatchEDID(t *testing.T) {
	p := Profiles["ms2109"]
	req := testRequest()
	req.EDID = hex.EncodeToString(testEDID())

	out, err := Patch(p, testBase(p), req, Config{})
	require.NoError(t, err)
	require.Equal(t, testEDID(), out[testEDIDOffset:testEDIDOffset+edidLen])
	require.NoError(t, CheckImage(p, out))
}

func TestPatchEDIDBadChecksum(t *testing.T) {
	p := Profiles["ms2130"]
	edid := testEDID()
	edid[edidLen-1]++

	req := testRequest()
	req.EDID = hex.EncodeToString(edid)

	base := testBase(p)
	orig := append([]byte(nil), base...)
	out, err := Patch(p, base, req, Config{})
	require.ErrorIs(t, err, ErrorValidation)
	require.Nil(t, out)
	require.Equal(t, orig, base)
}

func TestPatchEDIDMissingAnchor(t *testing.T) {
	p := Profiles["ms2109"]
	base := testBase(p)
	base[testEDIDOffset+1] = 0

	req := testRequest()
	req.EDID = hex.EncodeToString(testEDID())

	_, err := Patch(p, base, req, Config{})
	require.ErrorIs(t, err, ErrorPatternNotFound)
}

func TestPatchSerial(t *testing.T) {
	p := Profiles["ms2130"]
	req := testRequest()
	req.Serial = "20240101"

	out, err := Patch(p, testBase(p), req, Config{})
	require.NoError(t, err)
	require.NoError(t, CheckImage(p, out))

	n := len(req.Serial)
	var descs [][]byte
	for i, anchor := range p.SerialAnchors {
		at := testSerialBase + i*testSerialStep + len(anchor)
		desc := out[at : at+2+2*n]
		require.Equal(t, byte(2*n+2), desc[0])
		require.Equal(t, byte(0x03), desc[1])
		text, err := encodeUTF16LE(req.Serial)
		require.NoError(t, err)
		require.Equal(t, text, desc[2:])
		descs = append(descs, desc)
	}
	require.Len(t, descs, 2)
	require.Equal(t, descs[0], descs[1])
}

func TestPatchSerialUnsupported(t *testing.T) {
	p := Profiles["ms2109"]
	req := testRequest()
	req.Serial = "1"

	out, err := Patch(p, testBase(p), req, Config{})
	require.ErrorIs(t, err, ErrorUnsupported)
	require.Nil(t, out)
}

func TestPatchAnchorInText(t *testing.T) {
	/* A descriptor containing an anchor must not redirect the serial patch */
	p := Profiles["ms2130"]
	req := testRequest()
	req.Video = string(p.SerialAnchors[0])
	req.Serial = "X"

	out, err := Patch(p, testBase(p), req, Config{})
	require.NoError(t, err)

	at := testSerialBase + len(p.SerialAnchors[0])
	require.Equal(t, []byte{4, 0x03, 'X', 0}, out[at:at+4])
	require.Equal(t, req.Video, string(out[0x11:0x15]))
}

func TestPatchOutOfBounds(t *testing.T) {
	p := *Profiles["ms2109"]
	p.VersionOffset = testSize

	_, err := Patch(&p, testBase(&p), testRequest(), Config{})
	require.ErrorIs(t, err, ErrorOutOfBounds)
}

func TestPatchLogs(t *testing.T) {
	p := Profiles["ms2130"]
	var lines []string
	config := Config{
		LogFunc: func(level int, format string, param ...interface{}) {
			lines = append(lines, fmt.Sprintf(format, param...))
		},
	}

	out, err := Patch(p, testBase(p), testRequest(), config)
	require.NoError(t, err)
	require.Contains(t, lines, "VID:PID 1234:5678 at 0004/0006")

	hdr, err := p.HeaderSum(out)
	require.NoError(t, err)
	code, err := p.CodeSum(out)
	require.NoError(t, err)
	require.Contains(t, lines, fmt.Sprintf("Checksums: header %04x, code %04x", hdr, code))
}
