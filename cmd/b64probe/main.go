// Command b64probe checks which SIMD variants the Go toolchain can assemble
// for a target and writes the compiled variant manifest of rapidbase64.
//
//	go run ./cmd/b64probe -goarch amd64 -kernels AVX2 -o zcompiled_amd64.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"
	"strings"
	"time"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("b64probe: ")

	var (
		goos    = flag.String("goos", runtime.GOOS, "target operating system")
		goarch  = flag.String("goarch", runtime.GOARCH, "target architecture")
		kernels = flag.String("kernels", "", "comma separated variants the package has kernels for")
		out     = flag.String("o", "", "output file (default zcompiled_<goarch>.go)")
		pkg     = flag.String("pkg", "rapidbase64", "package name of the generated file")
		gocmd   = flag.String("go", "go", "go command")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall probe timeout")
	)
	flag.Parse()

	tc, err := newGoToolchain(*gocmd)
	if err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		*out = "zcompiled_" + *goarch + ".go"
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, tc, *goos, *goarch, *pkg, splitList(*kernels), *out); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, tc Toolchain, goos, goarch, pkg string, kernels []string, out string) error {
	p := &Prober{Toolchain: tc, GOOS: goos, GOARCH: goarch}
	results, err := p.Probe(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Supported && len(r.ExtraFlags) > 0:
			log.Printf("%s/%s %s: ok with %s", goos, goarch, r.Variant, strings.Join(r.ExtraFlags, " "))
		case r.Supported:
			log.Printf("%s/%s %s: ok", goos, goarch, r.Variant)
		case r.Err != nil:
			log.Printf("%s/%s %s: unsupported: %v", goos, goarch, r.Variant, r.Err)
		}
	}

	src, err := render(pkg, goos, goarch, results, kernels)
	if err != nil {
		return err
	}
	return os.WriteFile(out, src, 0o644)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
