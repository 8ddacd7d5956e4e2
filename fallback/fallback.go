// Package fallback is a portable base64 codec built on encoding/base64 with
// the same semantics as the rapidbase64 package. It is slower and exists as
// a reference: tests compare every variant against it.
package fallback

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/segmentio/asm/ascii"

	"github.com/mnightingale/rapidbase64/internal/codec"
)

// Name is reported in place of a variant name.
const Name = "Fallback"

func Encode(src, altchars []byte) ([]byte, error) {
	alt, err := codec.ParseAltChars(altchars)
	if err != nil {
		return nil, fmt.Errorf("[fallback] encode: %w", err)
	}
	dst := make([]byte, base64.StdEncoding.EncodedLen(len(src)))
	base64.StdEncoding.Encode(dst, src)
	alt.TranslateEncoded(dst)
	return dst, nil
}

func EncodeToString(src, altchars []byte) (string, error) {
	b, err := Encode(src, altchars)
	return string(b), err
}

// EncodeBytes returns MIME style output: lines of 76 symbols ending in '\n'.
func EncodeBytes(src []byte) []byte {
	if len(src) == 0 {
		return []byte{}
	}
	enc := base64.StdEncoding.EncodeToString(src)
	dst := make([]byte, 0, codec.EncodedLinesLen(len(src)))
	for i := 0; i < len(enc); i += codec.LineLength {
		end := min(i+codec.LineLength, len(enc))
		dst = append(dst, enc[i:end]...)
		dst = append(dst, '\n')
	}
	return dst
}

func DecodeString(s string, altchars []byte, validate bool) ([]byte, error) {
	if !ascii.ValidString(s) {
		return nil, fmt.Errorf("[fallback] decode: %w", codec.ErrInvalidArgument)
	}
	return Decode([]byte(s), altchars, validate)
}

func Decode(src, altchars []byte, validate bool) ([]byte, error) {
	alt, err := codec.ParseAltChars(altchars)
	if err != nil {
		return nil, fmt.Errorf("[fallback] decode: %w", err)
	}
	src = alt.TranslateInput(src)

	var out []byte
	if validate {
		out, err = decodeValidate(src)
	} else {
		out, err = decodeFiltered(src)
	}
	if err != nil {
		return nil, fmt.Errorf("[fallback] decode: %w", err)
	}
	return out, nil
}

func decodeValidate(src []byte) ([]byte, error) {
	// encoding/base64 skips '\r' and '\n', here they are invalid like any
	// other byte outside the alphabet.
	for i, c := range src {
		if !isSymbol(c) && c != codec.Pad {
			return nil, &codec.CorruptInputError{Kind: codec.ErrInvalidCharacter, Offset: int64(i)}
		}
	}
	if len(src)%4 != 0 {
		return nil, &codec.CorruptInputError{Kind: codec.ErrIncorrectPadding, Offset: int64(len(src))}
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(src)))
	n, err := base64.StdEncoding.Decode(out, src)
	if err != nil {
		var cie base64.CorruptInputError
		offset := int64(len(src))
		if errors.As(err, &cie) {
			offset = int64(cie)
		}
		return nil, &codec.CorruptInputError{Kind: codec.ErrInvalidCharacter, Offset: offset}
	}

	pad := 0
	if len(src) > 0 && src[len(src)-1] == codec.Pad {
		pad++
		if src[len(src)-2] == codec.Pad {
			pad++
		}
	}
	if n != 3*(len(src)/4)-pad {
		return nil, &codec.CorruptInputError{Kind: codec.ErrInvalidCharacter, Offset: int64(len(src))}
	}
	return out[:n], nil
}

// decodeFiltered rewrites src into canonical padded base64 and decodes that.
// Bytes outside the alphabet are dropped. A '=' is only honoured in the
// third position of a group when the next kept symbol is '=' too, and in the
// fourth position, where it ends the data.
func decodeFiltered(src []byte) ([]byte, error) {
	clean := make([]byte, 0, len(src)+2)
	pos := 0

scan:
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case isSymbol(c):
			clean = append(clean, c)
			pos = (pos + 1) % 4
		case c == codec.Pad && pos == 2 && nextKeptIsPad(src[i+1:]):
			clean = append(clean, codec.Pad, codec.Pad)
			pos = 0
			break scan
		case c == codec.Pad && pos == 3:
			clean = append(clean, codec.Pad)
			pos = 0
			break scan
		}
	}

	if pos != 0 {
		return nil, &codec.CorruptInputError{Kind: codec.ErrIncorrectPadding, Offset: int64(len(src))}
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(clean)))
	n, err := base64.StdEncoding.Decode(out, clean)
	if err != nil {
		// clean is canonical by construction.
		return nil, &codec.CorruptInputError{Kind: codec.ErrIncorrectPadding, Offset: int64(len(src))}
	}
	return out[:n], nil
}

func nextKeptIsPad(src []byte) bool {
	for _, c := range src {
		if c == codec.Pad {
			return true
		}
		if isSymbol(c) {
			return false
		}
	}
	return false
}

func isSymbol(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9', c == '+', c == '/':
		return true
	}
	return false
}
