package msfw

const (
	testSize       = 0x800
	testEDIDOffset = 0x200
	testSerialBase = 0x400
	testSerialStep = 0x80
)

// testBase builds a synthetic base image for p with a valid trailer. The
// filler never contains the EDID magic or a serial anchor by itself.
func testBase(p *Profile) []byte {
	f := make([]byte, testSize)
	for i := range f {
		f[i] = byte(i * 7)
	}

	copy(f[testEDIDOffset:], edidMagic)
	for i, a := range p.SerialAnchors {
		copy(f[testSerialBase+i*testSerialStep:], a)
	}

	if err := FixImage(p, f); err != nil {
		panic(err)
	}
	return f
}

func testEDID() []byte {
	e := make([]byte, edidLen)
	copy(e, edidMagic)
	for i := len(edidMagic); i < edidLen-1; i++ {
		e[i] = byte(i)
	}
	e[edidLen-1] = -EDIDSum(e[:edidLen-1])
	return e
}

func testRequest() Request {
	return Request{
		VID:     "1234",
		PID:     "5678",
		Version: "0001abcd",
		Video:   "Cap Video",
		Audio:   "Cap Audio",
	}
}
