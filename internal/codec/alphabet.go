package codec

import "fmt"

const (
	StdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	Pad         = '='

	// LUT markers, both have the top bits set so a single OR of a group detects them.
	invalidSymbol byte = 0xFF
	padSymbol     byte = 0xFE
)

// decodeLUT maps an ASCII symbol to its 6-bit value, padSymbol for '=' or
// invalidSymbol for anything outside the standard alphabet.
var decodeLUT [256]byte

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = invalidSymbol
	}
	for i := 0; i < len(StdAlphabet); i++ {
		decodeLUT[StdAlphabet[i]] = byte(i)
	}
	decodeLUT[Pad] = padSymbol
}

// AltChars replaces the symbols for values 62 and 63.
// The zero value means the standard '+' and '/'.
type AltChars struct {
	c0, c1 byte
	set    bool
}

// ParseAltChars validates an alternative alphabet. A nil slice selects the
// standard alphabet, as does "+/".
func ParseAltChars(b []byte) (AltChars, error) {
	if b == nil {
		return AltChars{}, nil
	}
	if len(b) != 2 {
		return AltChars{}, fmt.Errorf("%w, got %d", ErrInvalidAlphabet, len(b))
	}
	if b[0] == '+' && b[1] == '/' {
		return AltChars{}, nil
	}
	return AltChars{c0: b[0], c1: b[1], set: true}, nil
}

// IsSet reports whether a substitution is needed.
func (a AltChars) IsSet() bool { return a.set }

func (a AltChars) String() string {
	if !a.set {
		return "+/"
	}
	return string([]byte{a.c0, a.c1})
}

// TranslateInput returns src with the alternative symbols mapped back to the
// standard alphabet. '+' and '/' already in src are kept and still decode as
// 62 and 63. src is returned untouched when no substitution is set.
func (a AltChars) TranslateInput(src []byte) []byte {
	if !a.set {
		return src
	}
	out := make([]byte, len(src))
	for i, c := range src {
		switch c {
		case a.c0:
			out[i] = '+'
		case a.c1:
			out[i] = '/'
		default:
			out[i] = c
		}
	}
	return out
}

// TranslateEncoded rewrites standard output in place: '+' -> c0, '/' -> c1.
func (a AltChars) TranslateEncoded(buf []byte) {
	if !a.set {
		return
	}
	for i, c := range buf {
		switch c {
		case '+':
			buf[i] = a.c0
		case '/':
			buf[i] = a.c1
		}
	}
}
