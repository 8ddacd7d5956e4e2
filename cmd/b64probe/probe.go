package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Toolchain builds the probe program in dir. A non-nil error means the
// snippet did not compile or link.
type Toolchain interface {
	Build(ctx context.Context, dir string, env []string) error
}

type goToolchain struct {
	path string
}

// newGoToolchain resolves the go command. Failing here is the only fatal
// outcome of a probe run.
func newGoToolchain(name string) (*goToolchain, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("go toolchain not found: %w", err)
	}
	return &goToolchain{path: path}, nil
}

func (g *goToolchain) Build(ctx context.Context, dir string, env []string) error {
	cmd := exec.CommandContext(ctx, g.path, "build", "-o", filepath.Join(dir, "probe.bin"), ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOFLAGS=", "GOWORK=off", "CGO_ENABLED=0")
	cmd.Env = append(cmd.Env, env...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

// variantSpec is how one variant is exercised on one architecture.
type variantSpec struct {
	Name   string
	GOARCH string
	Instr  string   // signature instruction in Go assembler syntax
	Retry  []string // environment for the second attempt
	Tags   []string // build tags implied by Retry
}

// specs lists the SIMD variants in priority order. Generic needs no snippet.
var specs = []variantSpec{
	{Name: "SSSE3", GOARCH: "amd64", Instr: "PSHUFB X1, X0", Retry: []string{"GOAMD64=v2"}, Tags: []string{"amd64.v2"}},
	{Name: "SSE41", GOARCH: "amd64", Instr: "PBLENDW $0x0f, X1, X0", Retry: []string{"GOAMD64=v2"}, Tags: []string{"amd64.v2"}},
	{Name: "SSE42", GOARCH: "amd64", Instr: "PCMPESTRI $0x0c, X1, X0", Retry: []string{"GOAMD64=v2"}, Tags: []string{"amd64.v2"}},
	{Name: "AVX", GOARCH: "amd64", Instr: "VPSHUFB X2, X1, X0", Retry: []string{"GOAMD64=v3"}, Tags: []string{"amd64.v3"}},
	{Name: "AVX2", GOARCH: "amd64", Instr: "VPSHUFB Y2, Y1, Y0", Retry: []string{"GOAMD64=v3"}, Tags: []string{"amd64.v3"}},
	// The arm assembler has no NEON mnemonics, vtbl.8 d0, {d1}, d2 is
	// emitted as its encoding.
	{Name: "NEON32", GOARCH: "arm", Instr: "WORD $0xf3b10802", Retry: []string{"GOARM=7"}, Tags: []string{"arm.7"}},
	{Name: "NEON64", GOARCH: "arm64", Instr: "VTBL V2.B16, [V0.B16], V1.B16"},
	{Name: "AVX512VBMI", GOARCH: "amd64", Instr: "VPERMB Z2, Z1, Z0", Retry: []string{"GOAMD64=v4"}, Tags: []string{"amd64.v4"}},
}

// variantNames lists every variant, Generic included, in priority order.
func variantNames() []string {
	names := []string{"Generic"}
	for _, s := range specs {
		names = append(names, s.Name)
	}
	return names
}

// Result is the outcome for one variant.
type Result struct {
	Variant    string
	Supported  bool
	ExtraFlags []string
	Defines    []string
	Err        error // last build failure, for the report only
}

type Prober struct {
	Toolchain Toolchain
	GOOS      string
	GOARCH    string
	TempDir   string // parent of the scratch directories, os.TempDir() if empty
}

// Probe checks every variant concurrently and returns the results in
// priority order. Build failures only mark a variant unsupported; the error
// is reserved for problems with the probe itself.
func (p *Prober) Probe(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(specs)+1)
	results[0] = Result{Variant: "Generic", Supported: true}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, spec := range specs {
		if spec.GOARCH != p.GOARCH {
			results[i+1] = Result{Variant: spec.Name}
			continue
		}
		g.Go(func() error {
			r, err := p.probeVariant(ctx, spec)
			if err != nil {
				return fmt.Errorf("probe %s: %w", spec.Name, err)
			}
			results[i+1] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Prober) probeVariant(ctx context.Context, spec variantSpec) (Result, error) {
	dir, err := os.MkdirTemp(p.TempDir, "b64probe-"+spec.Name+"-")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(dir)

	if err := writeSnippet(dir, spec); err != nil {
		return Result{}, err
	}

	env := []string{"GOOS=" + p.GOOS, "GOARCH=" + p.GOARCH}

	buildErr := p.Toolchain.Build(ctx, dir, env)
	if buildErr == nil {
		return Result{Variant: spec.Name, Supported: true}, nil
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	if len(spec.Retry) > 0 {
		retryErr := p.Toolchain.Build(ctx, dir, append(env, spec.Retry...))
		if retryErr == nil {
			return Result{
				Variant:    spec.Name,
				Supported:  true,
				ExtraFlags: spec.Retry,
				Defines:    spec.Tags,
			}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		buildErr = retryErr
	}

	return Result{Variant: spec.Name, Err: buildErr}, nil
}

const snippetGoMod = `module b64probe

go 1.21
`

const snippetGo = `package main

func probe()

var sink = probe

func main() { _ = sink }
`

func writeSnippet(dir string, spec variantSpec) error {
	asm := fmt.Sprintf("#include \"textflag.h\"\n\nTEXT ·probe(SB), NOSPLIT, $0-0\n\t%s\n\tRET\n", spec.Instr)

	files := []struct{ name, content string }{
		{"go.mod", snippetGoMod},
		{"probe.go", snippetGo},
		{"probe_" + spec.GOARCH + ".s", asm},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
