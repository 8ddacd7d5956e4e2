package codec

// Kernel is one implementation of the standard alphabet transform.
// The driver in this package handles alternative alphabets, padding rules,
// filtering and errors; a kernel only has to be fast on clean input.
type Kernel interface {
	// Name identifies the implementation in diagnostics.
	Name() string

	// Encode writes EncodedLen(len(src)) bytes of padded standard base64 to dst.
	Encode(dst, src []byte)

	// Decode converts the longest prefix of src made of complete 4-symbol
	// groups that contain only standard alphabet symbols. It stops before the
	// first group holding padding or any other byte and returns the number
	// of bytes written to dst and consumed from src. nSrc is a multiple of 4.
	// dst must hold at least len(src)/4*3 bytes.
	Decode(dst, src []byte) (nDst, nSrc int)
}

// EncodedLen returns the padded encoded length of n input bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// DecodedLen returns the maximum decoded length of n input bytes.
// It keeps room for a final partial group in lenient mode.
func DecodedLen(n int) int {
	return n/4*3 + 3
}

// LineLength is the number of symbols per line in MIME output.
const LineLength = 76

// EncodedLinesLen returns the length of MIME output for n input bytes.
func EncodedLinesLen(n int) int {
	if n == 0 {
		return 0
	}
	enc := EncodedLen(n)
	return enc + (enc+LineLength-1)/LineLength
}

// cleanPrefix returns the length of the leading whole groups of src holding
// only alphabet symbols. It reads no further than the first other byte, so
// repeated calls from the driver stay linear in the input.
func cleanPrefix(src []byte) int {
	n := len(src) &^ 3
	for i, c := range src[:n] {
		if decodeLUT[c]&0xC0 != 0 {
			return i &^ 3
		}
	}
	return n
}
