package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/mnightingale/rapidbase64"
)

type ioFlags struct {
	url      bool
	altchars string
	output   string
	zstd     bool
	maxInput int
}

func (f *ioFlags) register(fs *flag.FlagSet, verb string) {
	fs.BoolVar(&f.url, "u", false, "use URL "+verb+" (altchars -_)")
	fs.StringVar(&f.altchars, "a", "", "use alternative characters for "+verb)
	fs.StringVar(&f.output, "o", "", "output file (default stdout)")
	fs.BoolVar(&f.zstd, "zstd", false, "zstd compress before encoding or decompress after decoding")
	fs.IntVar(&f.maxInput, "max-size", defaultMaxInput, "maximum input size in bytes")
}

func (f *ioFlags) alphabet() ([]byte, error) {
	switch {
	case f.url && f.altchars != "":
		return nil, fmt.Errorf("%w: -u and -a are mutually exclusive", errUsage)
	case f.url:
		return []byte("-_"), nil
	case f.altchars != "":
		return []byte(f.altchars), nil
	}
	return nil, nil
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: at most one input file", errUsage)
	}
	return nil
}

func readInput(fs *flag.FlagSet, stdin io.Reader, limit int) ([]byte, error) {
	r := stdin
	if name := fs.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	rb := readBuffer{max: limit}
	return rb.readAll(r)
}

func writeOutput(name string, stdout io.Writer, data []byte) error {
	if name == "" || name == "-" {
		_, err := stdout.Write(data)
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runEncode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f ioFlags
	f.register(fs, "encoding")
	if err := parseFlags(fs, args); err != nil {
		return ignoreHelp(err)
	}

	altchars, err := f.alphabet()
	if err != nil {
		return err
	}

	data, err := readInput(fs, stdin, f.maxInput)
	if err != nil {
		return err
	}

	if f.zstd {
		if data, err = compress(data); err != nil {
			return err
		}
	}

	out, err := rapidbase64.Encode(data, altchars)
	if err != nil {
		return err
	}
	return writeOutput(f.output, stdout, out)
}

func runDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f ioFlags
	f.register(fs, "decoding")
	noValidation := fs.Bool("no-validation", false, "skip characters outside the alphabet instead of failing")
	if err := parseFlags(fs, args); err != nil {
		return ignoreHelp(err)
	}

	altchars, err := f.alphabet()
	if err != nil {
		return err
	}

	data, err := readInput(fs, stdin, f.maxInput)
	if err != nil {
		return err
	}

	out, err := rapidbase64.Decode(data, altchars, !*noValidation)
	if err != nil {
		return err
	}

	if f.zstd {
		if out, err = decompress(out, f.maxInput); err != nil {
			return err
		}
	}
	return writeOutput(f.output, stdout, out)
}

func runVersion(stdout io.Writer) error {
	cpu := rapidbase64.CPUInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "rapidbase64 %s\n", rapidbase64.Version())
	fmt.Fprintf(&b, "path:     %s\n", rapidbase64.VariantName(rapidbase64.CurrentPath()))
	fmt.Fprintf(&b, "compiled: %s\n", rapidbase64.CompiledMask())
	fmt.Fprintf(&b, "runtime:  %s\n", rapidbase64.RuntimeMask())
	for _, v := range rapidbase64.CompiledMask().Variants() {
		if extra, defines := rapidbase64.CompiledFlags(v); len(extra) > 0 {
			fmt.Fprintf(&b, "  %s built with %s (%s)\n", v, strings.Join(extra, " "), strings.Join(defines, ","))
		}
	}
	fmt.Fprintf(&b, "cpu:      %s (%s, %d cores, %d threads)\n", cpu.Brand, cpu.Vendor, cpu.PhysicalCores, cpu.LogicalCores)
	fmt.Fprintf(&b, "cpuid:    %s\n", cpu.Mask)

	_, err := io.WriteString(stdout, b.String())
	return err
}

func ignoreHelp(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte, limit int) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(limit)))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}
