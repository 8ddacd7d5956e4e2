package rapidbase64

import (
	"fmt"
	"strings"
)

// Variant identifies one implementation of the codec, tied to an instruction
// set family. Higher values are preferred when both the build and the CPU
// support them.
type Variant uint8

const (
	Generic Variant = iota // no SIMD, always available
	SSSE3
	SSE41
	SSE42
	AVX
	AVX2
	NEON32
	NEON64
	AVX512VBMI

	NumVariants = int(AVX512VBMI) + 1
)

var variantNames = [NumVariants]string{
	Generic:    "Generic",
	SSSE3:      "SSSE3",
	SSE41:      "SSE41",
	SSE42:      "SSE42",
	AVX:        "AVX",
	AVX2:       "AVX2",
	NEON32:     "NEON32",
	NEON64:     "NEON64",
	AVX512VBMI: "AVX512VBMI",
}

func (v Variant) String() string {
	if int(v) < NumVariants {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// VariantName returns the stable name of v used in diagnostics. The no-SIMD
// path is "Generic"; "Fallback" names the separate encoding/base64 based
// package in fallback, which is not a Variant.
func VariantName(v Variant) string {
	return v.String()
}

// ParseVariant returns the Variant named s, ignoring case.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if strings.EqualFold(s, name) {
			return Variant(i), nil
		}
	}
	return Generic, fmt.Errorf("[rapidbase64] unknown variant %q", s)
}

// Mask is a set of variants, used for both what the build contains and what
// the running CPU supports.
type Mask uint32

// MaskOf returns the set holding vs.
func MaskOf(vs ...Variant) Mask {
	var m Mask
	for _, v := range vs {
		m |= 1 << v
	}
	return m
}

func (m Mask) Has(v Variant) bool {
	return m&(1<<v) != 0
}

func (m Mask) And(o Mask) Mask {
	return m & o
}

// Highest returns the preferred variant in m, or Generic when m is empty.
func (m Mask) Highest() Variant {
	for v := NumVariants - 1; v > 0; v-- {
		if m.Has(Variant(v)) {
			return Variant(v)
		}
	}
	return Generic
}

// Variants lists the members of m in priority order, lowest first.
func (m Mask) Variants() []Variant {
	var vs []Variant
	for v := 0; v < NumVariants; v++ {
		if m.Has(Variant(v)) {
			vs = append(vs, Variant(v))
		}
	}
	return vs
}

func (m Mask) String() string {
	vs := m.Variants()
	if len(vs) == 0 {
		return "none"
	}
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.String()
	}
	return strings.Join(names, "|")
}
