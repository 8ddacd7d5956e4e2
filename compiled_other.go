//go:build !(amd64 || arm64) || purego

package rapidbase64

const compiledMask Mask = 1 << Generic

var compiledFlags = map[Variant]buildFlags{
	Generic: {},
}
