//go:build (amd64 || arm64) && !purego

package codec

import "github.com/segmentio/asm/base64"

// Native is the vector kernel for this architecture: AVX2 on amd64 and NEON
// on arm64. On CPUs without those extensions segmentio/asm routes the calls
// to encoding/base64, so binding it is always safe.
var Native Kernel = nativeKernel{}

type nativeKernel struct{}

func (nativeKernel) Name() string { return "segmentio/asm" }

func (nativeKernel) Encode(dst, src []byte) {
	base64.StdEncoding.Encode(dst, src)
}

func (nativeKernel) Decode(dst, src []byte) (int, int) {
	// encoding/base64 underneath ignores newlines and consumes padding,
	// neither of which belongs to a clean prefix.
	n := cleanPrefix(src)
	if n == 0 {
		return 0, 0
	}

	nDst, err := base64.StdEncoding.Decode(dst, src[:n])
	if err != nil {
		// Some group in the prefix is invalid, let the scalar loop find which.
		return Generic.Decode(dst, src[:n])
	}
	return nDst, n
}
