//go:build 386 || amd64

package rapidbase64

import "golang.org/x/sys/cpu"

func detectFeatures() features {
	return features{
		SSSE3:      cpu.X86.HasSSSE3,
		SSE41:      cpu.X86.HasSSE41,
		SSE42:      cpu.X86.HasSSE42,
		AVX:        cpu.X86.HasAVX,
		AVX2:       cpu.X86.HasAVX2,
		AVX512F:    cpu.X86.HasAVX512F,
		AVX512VL:   cpu.X86.HasAVX512VL,
		AVX512VBMI: cpu.X86.HasAVX512VBMI,
	}
}
