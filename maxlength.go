package rapidbase64

import "github.com/mnightingale/rapidbase64/internal/codec"

// EncodedLen returns the length of padded base64 output for n input bytes.
func EncodedLen(n int) int {
	return codec.EncodedLen(n)
}

// DecodedLen returns the maximum decoded length for n bytes of base64 input.
func DecodedLen(n int) int {
	return n / 4 * 3
}

// EncodedLinesLen returns the length of [EncodeBytes] output for n input
// bytes: 76 symbols per line, each line ending with '\n'.
func EncodedLinesLen(n int) int {
	return codec.EncodedLinesLen(n)
}
