package rapidbase64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariantNames(t *testing.T) {
	cases := []struct {
		variant Variant
		name    string
	}{
		{Generic, "Generic"},
		{SSSE3, "SSSE3"},
		{SSE41, "SSE41"},
		{SSE42, "SSE42"},
		{AVX, "AVX"},
		{AVX2, "AVX2"},
		{NEON32, "NEON32"},
		{NEON64, "NEON64"},
		{AVX512VBMI, "AVX512VBMI"},
		{Variant(42), "Variant(42)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, VariantName(tc.variant))

			if int(tc.variant) < NumVariants {
				v, err := ParseVariant(tc.name)
				require.NoError(t, err)
				require.Equal(t, tc.variant, v)
			}
		})
	}

	v, err := ParseVariant("avx2")
	require.NoError(t, err)
	require.Equal(t, AVX2, v)

	_, err = ParseVariant("sse2")
	require.Error(t, err)
}

func TestVariantOrder(t *testing.T) {
	order := []Variant{Generic, SSSE3, SSE41, SSE42, AVX, AVX2, NEON32, NEON64, AVX512VBMI}
	for i := 1; i < len(order); i++ {
		require.Less(t, order[i-1], order[i])
	}
}

func TestMask(t *testing.T) {
	m := MaskOf(Generic, SSE41, AVX2)
	require.True(t, m.Has(AVX2))
	require.False(t, m.Has(AVX))
	require.Equal(t, AVX2, m.Highest())
	require.Equal(t, []Variant{Generic, SSE41, AVX2}, m.Variants())
	require.Equal(t, "Generic|SSE41|AVX2", m.String())
	require.Equal(t, MaskOf(Generic, AVX2), m.And(MaskOf(Generic, AVX2, NEON64)))

	require.Equal(t, Generic, Mask(0).Highest())
	require.Equal(t, "none", Mask(0).String())
}
