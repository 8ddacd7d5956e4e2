//go:build !(amd64 || arm64) || purego

package codec

// Native is nil where no vector kernel is built.
var Native Kernel
