package rapidbase64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskFromFeatures(t *testing.T) {
	cases := []struct {
		name     string
		features features
		expected Mask
	}{
		{"none", features{}, MaskOf(Generic)},
		{"sse", features{SSSE3: true, SSE41: true, SSE42: true}, MaskOf(Generic, SSSE3, SSE41, SSE42)},
		{"haswell", features{SSSE3: true, SSE41: true, SSE42: true, AVX: true, AVX2: true}, MaskOf(Generic, SSSE3, SSE41, SSE42, AVX, AVX2)},
		{"vbmi without vl", features{AVX: true, AVX512F: true, AVX512VBMI: true}, MaskOf(Generic, AVX)},
		{"vbmi without os avx", features{AVX512F: true, AVX512VL: true, AVX512VBMI: true}, MaskOf(Generic)},
		{"icelake", features{AVX: true, AVX2: true, AVX512F: true, AVX512VL: true, AVX512VBMI: true}, MaskOf(Generic, AVX, AVX2, AVX512VBMI)},
		{"arm", features{NEON: true}, MaskOf(Generic, NEON32)},
		{"arm64", features{ASIMD: true}, MaskOf(Generic, NEON64)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, maskFromFeatures(tc.features))
		})
	}
}

func TestProbeRuntimeRecovers(t *testing.T) {
	m := probeRuntime(func() features { panic("cpuid unavailable") })
	require.Equal(t, MaskOf(Generic), m)
}

func TestProbeRuntimeMocked(t *testing.T) {
	old := hostFeatures
	hostFeatures = func() features { return features{ASIMD: true} }
	defer func() { hostFeatures = old }()

	require.Equal(t, MaskOf(Generic, NEON64), probeRuntime(hostFeatures))
}

func TestRuntimeMaskMatchesHost(t *testing.T) {
	require.Equal(t, maskFromFeatures(detectFeatures()), RuntimeMask())
}

func TestCPUInfo(t *testing.T) {
	info := CPUInfo()
	require.True(t, info.Mask.Has(Generic))
	require.GreaterOrEqual(t, info.LogicalCores, 0)
}
