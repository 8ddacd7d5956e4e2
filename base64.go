package rapidbase64

import (
	"fmt"

	"github.com/segmentio/asm/ascii"

	"github.com/mnightingale/rapidbase64/internal/codec"
)

// Encode returns src in base64 with '=' padding. altchars, when not nil, must
// be 2 bytes replacing '+' and '/', e.g. []byte("-_") for URL safe output.
func (c *Codec) Encode(src, altchars []byte) ([]byte, error) {
	alt, err := codec.ParseAltChars(altchars)
	if err != nil {
		return nil, fmt.Errorf("[rapidbase64] encode: %w", err)
	}
	return codec.Encode(c.current.Load().kernel, src, alt), nil
}

// EncodeToString is like Encode but returns a string.
func (c *Codec) EncodeToString(src, altchars []byte) (string, error) {
	b, err := c.Encode(src, altchars)
	return string(b), err
}

// Decode decodes base64 src. With validate false, bytes outside the alphabet
// are discarded and only truncated input is an error. With validate true
// anything but canonical padded base64 is rejected.
func (c *Codec) Decode(src, altchars []byte, validate bool) ([]byte, error) {
	alt, err := codec.ParseAltChars(altchars)
	if err != nil {
		return nil, fmt.Errorf("[rapidbase64] decode: %w", err)
	}
	out, err := codec.Decode(c.current.Load().kernel, src, alt, validate)
	if err != nil {
		return nil, fmt.Errorf("[rapidbase64] decode: %w", err)
	}
	return out, nil
}

// DecodeString is like Decode for text input, which must be ASCII.
func (c *Codec) DecodeString(s string, altchars []byte, validate bool) ([]byte, error) {
	if !ascii.ValidString(s) {
		return nil, fmt.Errorf("[rapidbase64] decode: %w", ErrInvalidArgument)
	}
	return c.Decode([]byte(s), altchars, validate)
}

// EncodeBytes returns src in base64 split in lines of 76 symbols, each
// ending with '\n', as used by MIME. It always uses the standard alphabet.
func (c *Codec) EncodeBytes(src []byte) []byte {
	return codec.EncodeLines(c.current.Load().kernel, src)
}

// Encode encodes src with the process-wide Codec.
func Encode(src, altchars []byte) ([]byte, error) {
	return std.Encode(src, altchars)
}

// EncodeToString encodes src with the process-wide Codec.
func EncodeToString(src, altchars []byte) (string, error) {
	return std.EncodeToString(src, altchars)
}

// Decode decodes src with the process-wide Codec.
func Decode(src, altchars []byte, validate bool) ([]byte, error) {
	return std.Decode(src, altchars, validate)
}

// DecodeString decodes s with the process-wide Codec.
func DecodeString(s string, altchars []byte, validate bool) ([]byte, error) {
	return std.DecodeString(s, altchars, validate)
}

// EncodeBytes encodes src in MIME lines with the process-wide Codec.
func EncodeBytes(src []byte) []byte {
	return std.EncodeBytes(src)
}
