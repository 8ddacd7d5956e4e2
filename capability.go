package rapidbase64

import (
	"github.com/klauspost/cpuid/v2"
)

// features holds the CPU feature bits the codec variants depend on.
type features struct {
	SSSE3      bool
	SSE41      bool
	SSE42      bool
	AVX        bool // implies OS support for YMM state
	AVX2       bool
	AVX512F    bool
	AVX512VL   bool
	AVX512VBMI bool
	NEON       bool // 32-bit ARM
	ASIMD      bool // arm64
}

// hostFeatures reads the running CPU, replaced in tests.
var hostFeatures = detectFeatures

func maskFromFeatures(f features) Mask {
	m := MaskOf(Generic)
	if f.SSSE3 {
		m |= MaskOf(SSSE3)
	}
	if f.SSE41 {
		m |= MaskOf(SSE41)
	}
	if f.SSE42 {
		m |= MaskOf(SSE42)
	}
	if f.AVX {
		m |= MaskOf(AVX)
	}
	if f.AVX2 {
		m |= MaskOf(AVX2)
	}
	if f.NEON {
		m |= MaskOf(NEON32)
	}
	if f.ASIMD {
		m |= MaskOf(NEON64)
	}
	if f.AVX && f.AVX512F && f.AVX512VL && f.AVX512VBMI {
		m |= MaskOf(AVX512VBMI)
	}
	return m
}

// probeRuntime never fails: if detection panics the result is Generic only.
func probeRuntime(detect func() features) (m Mask) {
	defer func() {
		if r := recover(); r != nil {
			m = MaskOf(Generic)
		}
	}()
	return maskFromFeatures(detect())
}

var runtimeMask = probeRuntime(hostFeatures)

// CPU describes the processor for diagnostics.
type CPU struct {
	Brand         string
	Vendor        string
	PhysicalCores int
	LogicalCores  int
	Features      []string

	// Mask is the variant set derived from cpuid, next to RuntimeMask
	// it helps when the two detectors disagree.
	Mask Mask
}

// CPUInfo describes the running processor. It is informational only and
// never used for path selection.
func CPUInfo() CPU {
	c := cpuid.CPU
	return CPU{
		Brand:         c.BrandName,
		Vendor:        c.VendorString,
		PhysicalCores: c.PhysicalCores,
		LogicalCores:  c.LogicalCores,
		Features:      c.FeatureSet(),
		Mask: maskFromFeatures(features{
			SSSE3:      c.Supports(cpuid.SSSE3),
			SSE41:      c.Supports(cpuid.SSE4),
			SSE42:      c.Supports(cpuid.SSE42),
			AVX:        c.Supports(cpuid.AVX),
			AVX2:       c.Supports(cpuid.AVX2),
			AVX512F:    c.Supports(cpuid.AVX512F),
			AVX512VL:   c.Supports(cpuid.AVX512VL),
			AVX512VBMI: c.Supports(cpuid.AVX512VBMI),
			ASIMD:      c.Supports(cpuid.ASIMD),
		}),
	}
}
