package msfw

import (
	"encoding/binary"
)

func calcSum(f []byte) uint16 {
	var csum uint16
	for _, m := range f {
		csum += uint16(m)
	}
	return csum
}

// EDIDSum is the 8-bit sum of an EDID block, zero for a valid block.
func EDIDSum(f []byte) byte {
	var csum byte
	for _, m := range f {
		csum += m
	}
	return csum
}

func (p *Profile) sumRanges(f []byte, ranges ...Range) (uint16, error) {
	var csum uint16
	for _, r := range ranges {
		start, end := r.resolve(len(f))
		if start < 0 || end > len(f) || start > end {
			return 0, &OutOfBoundsError{Field: p.Name + " checksum", Offset: start, Length: end - start, Size: len(f)}
		}
		csum += calcSum(f[start:end])
	}
	return csum, nil
}

func (p *Profile) HeaderSum(f []byte) (uint16, error) {
	return p.sumRanges(f, p.HeaderRanges...)
}

func (p *Profile) CodeSum(f []byte) (uint16, error) {
	return p.sumRanges(f, p.CodeRange)
}

func (p *Profile) work(f []byte, fix bool) error {
	if len(f) < headerLen+trailerLen {
		return &OutOfBoundsError{Field: "checksum", Offset: len(f) - trailerLen, Length: trailerLen, Size: len(f)}
	}

	hdrSum, err := p.HeaderSum(f)
	if err != nil {
		return err
	}
	codeSum, err := p.CodeSum(f)
	if err != nil {
		return err
	}

	end := len(f) - trailerLen
	if !fix {
		if hdrImg := binary.BigEndian.Uint16(f[end:]); hdrSum != hdrImg {
			return &ChecksumError{Which: "header", Computed: hdrSum, Stored: hdrImg}
		} else if codeImg := binary.BigEndian.Uint16(f[end+2:]); codeSum != codeImg {
			return &ChecksumError{Which: "code", Computed: codeSum, Stored: codeImg}
		}
	} else {
		binary.BigEndian.PutUint16(f[end:], hdrSum)
		binary.BigEndian.PutUint16(f[end+2:], codeSum)
	}

	return nil
}

// CheckImage verifies the trailing header and code checksums.
func CheckImage(p *Profile, f []byte) error {
	return p.work(f, false)
}

// FixImage overwrites the trailing checksums with freshly computed ones.
func FixImage(p *Profile, f []byte) error {
	return p.work(f, true)
}
