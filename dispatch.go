package rapidbase64

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/mnightingale/rapidbase64/internal/codec"
)

// buildFlags is what the build probe recorded for a compiled variant.
type buildFlags struct {
	ExtraFlags []string // environment or flags the toolchain needed, e.g. GOAMD64=v3
	Defines    []string // build tags the variant relies on
}

// kernels is indexed by Variant and read-only once built. Every compiled
// variant other than Generic is served by the vector kernel of this
// architecture.
var kernels = buildKernels()

func buildKernels() [NumVariants]codec.Kernel {
	var ks [NumVariants]codec.Kernel
	ks[Generic] = codec.Generic
	if codec.Native != nil {
		for _, v := range compiledMask.Variants() {
			if v != Generic {
				ks[v] = codec.Native
			}
		}
	}
	return ks
}

// kernelMask is the set of variants with an implementation in this binary.
func kernelMask() Mask {
	var m Mask
	for v, k := range kernels {
		if k != nil {
			m |= MaskOf(Variant(v))
		}
	}
	return m
}

// EnvSIMD names the environment variable that forces the default path,
// e.g. RAPIDBASE64_SIMD=generic. "auto" or an empty value keeps automatic
// selection.
const EnvSIMD = "RAPIDBASE64_SIMD"

type binding struct {
	variant Variant
	kernel  codec.Kernel
}

// Codec binds encode and decode to one variant. The binding is swapped as a
// single pointer, so concurrent calls see either the old or the new pair.
type Codec struct {
	compiled Mask
	runtime  Mask

	initial    Variant
	hasInitial bool

	current atomic.Pointer[binding]
}

type Option func(c *Codec)

// WithRuntimeMask replaces the detected CPU features.
func WithRuntimeMask(m Mask) Option {
	return func(c *Codec) {
		c.runtime = m | MaskOf(Generic)
	}
}

// WithCompiledMask restricts the variants the Codec may use. Variants
// without an implementation in this binary are dropped.
func WithCompiledMask(m Mask) Option {
	return func(c *Codec) {
		c.compiled = (m | MaskOf(Generic)).And(kernelMask())
	}
}

// WithVariant selects v instead of the automatic choice. It is ignored if v
// is not compiled in.
func WithVariant(v Variant) Option {
	return func(c *Codec) {
		c.initial = v
		c.hasInitial = true
	}
}

// NewCodec returns a [Codec] bound to the best variant both compiled in and
// supported by the CPU.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		compiled: CompiledMask(),
		runtime:  runtimeMask,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.bind(c.compiled.And(c.runtime).Highest())
	if c.hasInitial {
		_ = c.SetCurrentPath(c.initial)
	}

	return c
}

func (c *Codec) bind(v Variant) {
	c.current.Store(&binding{variant: v, kernel: kernels[v]})
}

// CurrentPath returns the variant serving calls on c.
func (c *Codec) CurrentPath() Variant {
	return c.current.Load().variant
}

// SetCurrentPath binds c to v for subsequent calls. v must be compiled in but
// need not be supported by the CPU; callers forcing such a path are
// responsible for checking RuntimeMask first.
func (c *Codec) SetCurrentPath(v Variant) error {
	if int(v) >= NumVariants || !c.compiled.Has(v) {
		return fmt.Errorf("[rapidbase64] set path %s: %w", v, ErrUnsupportedVariant)
	}
	c.bind(v)
	return nil
}

func (c *Codec) CompiledMask() Mask { return c.compiled }

func (c *Codec) RuntimeMask() Mask { return c.runtime }

// Kernel returns the name of the implementation behind the current path,
// followed by the variant for vector paths, e.g. "segmentio/asm (AVX2)".
func (c *Codec) Kernel() string {
	b := c.current.Load()
	return kernelName(b.variant, b.kernel)
}

func kernelName(v Variant, k codec.Kernel) string {
	if v == Generic {
		return k.Name()
	}
	return k.Name() + " (" + v.String() + ")"
}

// std is the process-wide Codec behind the package functions.
var std = newDefault(os.Getenv(EnvSIMD))

func newDefault(env string) *Codec {
	var opts []Option
	if env = strings.TrimSpace(env); env != "" && !strings.EqualFold(env, "auto") {
		if v, err := ParseVariant(env); err == nil {
			opts = append(opts, WithVariant(v))
		}
	}
	return NewCodec(opts...)
}

// Default returns the process-wide Codec used by the package functions.
func Default() *Codec { return std }

// CurrentPath returns the variant serving the package functions.
func CurrentPath() Variant { return std.CurrentPath() }

// SetCurrentPath rebinds the package functions to v.
func SetCurrentPath(v Variant) error { return std.SetCurrentPath(v) }

// CompiledMask returns the variants built into this binary.
func CompiledMask() Mask { return compiledMask.And(kernelMask()) }

// RuntimeMask returns the variants the running CPU supports.
func RuntimeMask() Mask { return runtimeMask }

// CompiledFlags returns the extra toolchain settings and build tags the
// build probe recorded for v.
func CompiledFlags(v Variant) (extraFlags, defines []string) {
	f := compiledFlags[v]
	return f.ExtraFlags, f.Defines
}
