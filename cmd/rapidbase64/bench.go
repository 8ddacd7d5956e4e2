package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mnightingale/rapidbase64"
	"github.com/mnightingale/rapidbase64/fallback"
)

// implementation is one codec under measurement.
type implementation struct {
	name        string
	encode      func(src, altchars []byte) ([]byte, error)
	decode      func(src, altchars []byte, validate bool) ([]byte, error)
	encodeBytes func(src []byte) []byte
	activate    func() error
}

func implementations() []implementation {
	var impls []implementation
	for _, v := range rapidbase64.CompiledMask().And(rapidbase64.RuntimeMask()).Variants() {
		impls = append(impls, implementation{
			name:        v.String(),
			encode:      rapidbase64.Encode,
			decode:      rapidbase64.Decode,
			encodeBytes: rapidbase64.EncodeBytes,
			activate:    func() error { return rapidbase64.SetCurrentPath(v) },
		})
	}
	return append(impls, implementation{
		name:        fallback.Name,
		encode:      fallback.Encode,
		decode:      fallback.Decode,
		encodeBytes: fallback.EncodeBytes,
		activate:    func() error { return nil },
	})
}

// measure calls fn until d has elapsed and returns the throughput in MB/s
// of n input bytes per call.
func measure(d time.Duration, n int, fn func() error) (float64, error) {
	var (
		calls int
		start = time.Now()
	)
	for {
		if err := fn(); err != nil {
			return 0, err
		}
		calls++
		if elapsed := time.Since(start); elapsed >= d {
			return float64(n) * float64(calls) / elapsed.Seconds() / 1e6, nil
		}
	}
}

func runBenchmark(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seconds := fs.Float64("d", 1, "duration of each measurement in seconds")
	maxInput := fs.Int("max-size", defaultMaxInput, "maximum input size in bytes")
	if err := parseFlags(fs, args); err != nil {
		return ignoreHelp(err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: benchmark needs an input file", errUsage)
	}
	d := time.Duration(*seconds * float64(time.Second))

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	rb := readBuffer{max: *maxInput}
	data, err := rb.readAll(f)
	f.Close()
	if err != nil {
		return err
	}

	prev := rapidbase64.CurrentPath()
	defer rapidbase64.SetCurrentPath(prev)

	for _, altchars := range [][]byte{nil, []byte("-_")} {
		for _, validate := range []bool{false, true} {
			fmt.Fprintf(stdout, "altchars=%q validate=%t\n", altchars, validate)
			for _, impl := range implementations() {
				if err := benchImplementation(stdout, impl, data, altchars, validate, d); err != nil {
					return fmt.Errorf("%s: %w", impl.name, err)
				}
			}
		}
	}
	return nil
}

func benchImplementation(w io.Writer, impl implementation, data, altchars []byte, validate bool, d time.Duration) error {
	if err := impl.activate(); err != nil {
		return err
	}

	encoded, err := impl.encode(data, altchars)
	if err != nil {
		return err
	}

	rate, err := measure(d, len(data), func() error {
		_, err := impl.encode(data, altchars)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-32s %9.3f MB/s (%d bytes -> %d bytes)\n", impl.name+" encode", rate, len(data), len(encoded))

	if !validate && altchars == nil {
		lines := impl.encodeBytes(data)
		rate, _ = measure(d, len(data), func() error {
			impl.encodeBytes(data)
			return nil
		})
		fmt.Fprintf(w, "%-32s %9.3f MB/s (%d bytes -> %d bytes)\n", impl.name+" encodebytes", rate, len(data), len(lines))
	}

	decoded, err := impl.decode(encoded, altchars, validate)
	if err != nil {
		return err
	}
	rate, err = measure(d, len(encoded), func() error {
		_, err := impl.decode(encoded, altchars, validate)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-32s %9.3f MB/s (%d bytes -> %d bytes)\n", impl.name+" decode", rate, len(encoded), len(decoded))
	return nil
}
