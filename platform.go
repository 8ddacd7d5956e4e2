package rapidbase64

import (
	"fmt"
)

var version = 0x010200

// Version returns the library version followed by the active implementation.
func Version() string {
	return fmt.Sprintf("%d.%d.%d (%s)", version>>16&0xff, version>>8&0xff, version&0xff, Kernel())
}

// Kernel returns the name of the implementation serving the package
// functions, e.g. "generic" or "segmentio/asm (AVX2)".
func Kernel() string {
	return std.Kernel()
}
