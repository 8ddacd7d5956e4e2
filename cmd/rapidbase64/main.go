// Command rapidbase64 encodes, decodes and benchmarks base64 from the
// command line.
//
//	rapidbase64 encode [-u | -a XY] [-zstd] [-o out] [file]
//	rapidbase64 decode [-u | -a XY] [-no-validation] [-zstd] [-o out] [file]
//	rapidbase64 benchmark [-d seconds] file
//	rapidbase64 version
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

const usage = `usage: rapidbase64 <command> [flags] [file]

commands:
  encode     encode file (or stdin) to base64
  decode     decode base64 from file (or stdin)
  benchmark  measure throughput of every available variant
  version    print version and CPU capabilities
`

var errUsage = errors.New("invalid usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("rapidbase64: ")

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "encode":
		return runEncode(rest, stdin, stdout, stderr)
	case "decode":
		return runDecode(rest, stdin, stdout, stderr)
	case "benchmark":
		return runBenchmark(rest, stdout, stderr)
	case "version", "-V", "--version":
		return runVersion(stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", cmd, usage)
		return errUsage
	}
}
