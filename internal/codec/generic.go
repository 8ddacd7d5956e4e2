package codec

import "encoding/binary"

// Generic is the portable kernel. It works on 64-bit words where the input
// allows and falls back to one group at a time.
var Generic Kernel = genericKernel{}

type genericKernel struct{}

func (genericKernel) Name() string { return "generic" }

func (genericKernel) Encode(dst, src []byte) {
	if len(src) == 0 {
		return
	}

	di, si := 0, 0

	// 6 input bytes -> 8 symbols, reading 8 bytes at once.
	for len(src)-si >= 8 && len(dst)-di >= 8 {
		x := binary.BigEndian.Uint64(src[si:])
		dst[di+0] = StdAlphabet[x>>58&0x3F]
		dst[di+1] = StdAlphabet[x>>52&0x3F]
		dst[di+2] = StdAlphabet[x>>46&0x3F]
		dst[di+3] = StdAlphabet[x>>40&0x3F]
		dst[di+4] = StdAlphabet[x>>34&0x3F]
		dst[di+5] = StdAlphabet[x>>28&0x3F]
		dst[di+6] = StdAlphabet[x>>22&0x3F]
		dst[di+7] = StdAlphabet[x>>16&0x3F]
		si += 6
		di += 8
	}

	n := si + (len(src)-si)/3*3
	for si < n {
		v := uint(src[si])<<16 | uint(src[si+1])<<8 | uint(src[si+2])
		dst[di+0] = StdAlphabet[v>>18&0x3F]
		dst[di+1] = StdAlphabet[v>>12&0x3F]
		dst[di+2] = StdAlphabet[v>>6&0x3F]
		dst[di+3] = StdAlphabet[v&0x3F]
		si += 3
		di += 4
	}

	switch len(src) - si {
	case 1:
		v := uint(src[si]) << 16
		dst[di+0] = StdAlphabet[v>>18&0x3F]
		dst[di+1] = StdAlphabet[v>>12&0x3F]
		dst[di+2] = Pad
		dst[di+3] = Pad
	case 2:
		v := uint(src[si])<<16 | uint(src[si+1])<<8
		dst[di+0] = StdAlphabet[v>>18&0x3F]
		dst[di+1] = StdAlphabet[v>>12&0x3F]
		dst[di+2] = StdAlphabet[v>>6&0x3F]
		dst[di+3] = Pad
	}
}

func (genericKernel) Decode(dst, src []byte) (nDst, nSrc int) {
	// 8 symbols -> 6 bytes, the 8-byte store spills 2 bytes that the next
	// iteration overwrites.
	for len(src)-nSrc >= 8 && len(dst)-nDst >= 8 {
		x, ok := assemble64(src[nSrc : nSrc+8])
		if !ok {
			break
		}
		binary.BigEndian.PutUint64(dst[nDst:], x)
		nSrc += 8
		nDst += 6
	}

	for len(src)-nSrc >= 4 && len(dst)-nDst >= 3 {
		a := decodeLUT[src[nSrc]]
		b := decodeLUT[src[nSrc+1]]
		c := decodeLUT[src[nSrc+2]]
		d := decodeLUT[src[nSrc+3]]
		if (a|b|c|d)&0xC0 != 0 {
			break
		}
		dst[nDst+0] = a<<2 | b>>4
		dst[nDst+1] = b<<4 | c>>2
		dst[nDst+2] = c<<6 | d
		nSrc += 4
		nDst += 3
	}

	return nDst, nSrc
}

// assemble64 packs 8 symbols into the top 48 bits of a word.
func assemble64(s []byte) (uint64, bool) {
	n1 := decodeLUT[s[0]]
	n2 := decodeLUT[s[1]]
	n3 := decodeLUT[s[2]]
	n4 := decodeLUT[s[3]]
	n5 := decodeLUT[s[4]]
	n6 := decodeLUT[s[5]]
	n7 := decodeLUT[s[6]]
	n8 := decodeLUT[s[7]]
	if (n1|n2|n3|n4|n5|n6|n7|n8)&0xC0 != 0 {
		return 0, false
	}
	return uint64(n1)<<58 |
		uint64(n2)<<52 |
		uint64(n3)<<46 |
		uint64(n4)<<40 |
		uint64(n5)<<34 |
		uint64(n6)<<28 |
		uint64(n7)<<22 |
		uint64(n8)<<16, true
}
