package codec

// Encode returns src encoded with k, using alt for values 62 and 63.
func Encode(k Kernel, src []byte, alt AltChars) []byte {
	if len(src) == 0 {
		return []byte{}
	}
	dst := make([]byte, EncodedLen(len(src)))
	k.Encode(dst, src)
	alt.TranslateEncoded(dst)
	return dst
}

// EncodeLines returns src encoded with the standard alphabet and split into
// lines of LineLength symbols, each terminated by '\n'.
func EncodeLines(k Kernel, src []byte) []byte {
	if len(src) == 0 {
		return []byte{}
	}

	enc := make([]byte, EncodedLen(len(src)))
	k.Encode(enc, src)

	dst := make([]byte, 0, EncodedLinesLen(len(src)))
	for len(enc) > LineLength {
		dst = append(dst, enc[:LineLength]...)
		dst = append(dst, '\n')
		enc = enc[LineLength:]
	}
	dst = append(dst, enc...)
	return append(dst, '\n')
}

// Decode decodes src with k. With validate set the input must be canonical
// padded base64, otherwise bytes outside the alphabet are skipped.
func Decode(k Kernel, src []byte, alt AltChars, validate bool) ([]byte, error) {
	src = alt.TranslateInput(src)

	if validate && len(src)%4 != 0 {
		// A stray character is reported before the length problem it causes.
		if i := firstInvalid(src); i >= 0 {
			return nil, invalidCharacter(i)
		}
		return nil, incorrectPadding(len(src))
	}

	dst := make([]byte, DecodedLen(len(src)))

	var (
		n   int
		err error
	)
	if validate {
		n, err = decodeStrict(k, dst, src)
	} else {
		n, err = decodeLenient(k, dst, src)
	}
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// decodeStrict accepts only complete groups of alphabet symbols with at most
// two '=' closing the last group.
func decodeStrict(k Kernel, dst, src []byte) (int, error) {
	di, si := k.Decode(dst, src)

	for si < len(src) {
		last := si+4 == len(src)
		a := decodeLUT[src[si]]
		b := decodeLUT[src[si+1]]
		c := decodeLUT[src[si+2]]
		d := decodeLUT[src[si+3]]

		switch {
		case a&0xC0 != 0:
			return 0, invalidCharacter(si)
		case b&0xC0 != 0:
			return 0, invalidCharacter(si + 1)
		case c == padSymbol:
			if d != padSymbol {
				return 0, invalidCharacter(si + 3)
			}
			if !last {
				return 0, invalidCharacter(si + 4)
			}
			dst[di] = a<<2 | b>>4
			di++
		case c&0xC0 != 0:
			return 0, invalidCharacter(si + 2)
		case d == padSymbol:
			if !last {
				return 0, invalidCharacter(si + 4)
			}
			dst[di] = a<<2 | b>>4
			dst[di+1] = b<<4 | c>>2
			di += 2
		case d&0xC0 != 0:
			return 0, invalidCharacter(si + 3)
		default:
			dst[di] = a<<2 | b>>4
			dst[di+1] = b<<4 | c>>2
			dst[di+2] = c<<6 | d
			di += 3
		}
		si += 4

		if si < len(src) {
			nd, ns := k.Decode(dst[di:], src[si:])
			di += nd
			si += ns
		}
	}

	if expected := 3*(len(src)/4) - padCount(src); di != expected {
		return 0, invalidCharacter(len(src))
	}
	return di, nil
}

func firstInvalid(src []byte) int {
	for i, c := range src {
		if decodeLUT[c] == invalidSymbol {
			return i
		}
	}
	return -1
}

func padCount(src []byte) int {
	n := 0
	for i := len(src) - 1; i >= 0 && n < 2 && src[i] == Pad; i-- {
		n++
	}
	return n
}

// decodeLenient skips bytes outside the alphabet. A '=' in the first two
// positions of a group is skipped, in the third it ends the data only if the
// next kept symbol is also '=', in the fourth it always ends the data and the
// rest of src is ignored. Running out of input inside a group is a padding
// error; character problems never are.
func decodeLenient(k Kernel, dst, src []byte) (int, error) {
	var di, si int

	for si < len(src) {
		nd, ns := k.Decode(dst[di:], src[si:])
		di += nd
		si += ns

		var q [4]byte
		pos := 0
		for pos < 4 {
			if si == len(src) {
				if pos == 0 {
					return di, nil
				}
				return 0, incorrectPadding(si)
			}

			v := decodeLUT[src[si]]
			si++

			switch {
			case v == invalidSymbol:
				continue
			case v == padSymbol:
				switch pos {
				case 2:
					if nextKeptIsPad(src[si:]) {
						dst[di] = q[0]<<2 | q[1]>>4
						return di + 1, nil
					}
				case 3:
					dst[di] = q[0]<<2 | q[1]>>4
					dst[di+1] = q[1]<<4 | q[2]>>2
					return di + 2, nil
				}
				continue
			}

			q[pos] = v
			pos++
		}

		dst[di] = q[0]<<2 | q[1]>>4
		dst[di+1] = q[1]<<4 | q[2]>>2
		dst[di+2] = q[2]<<6 | q[3]
		di += 3
	}

	return di, nil
}

// nextKeptIsPad reports whether the first alphabet or pad symbol in src is '='.
func nextKeptIsPad(src []byte) bool {
	for _, c := range src {
		switch decodeLUT[c] {
		case invalidSymbol:
			continue
		case padSymbol:
			return true
		default:
			return false
		}
	}
	return false
}
