// Command collatz cross-validates the naive, slow, and fast Collatz engines
// against a fixed battery of inputs and times the slow engine against one
// very large input.
//
// Usage:
//
//	go run ./cmd/collatz [flags]
//
// Flags:
//
//	-format      Output format: text, csv, or json (default: text)
//	-o           Output file (default: stdout)
//	-v           Verbose output with per-case diagnostics
//	-large-bits  Bit size of the large timing input, n = 2^large-bits + 1
//	-skip-large  Skip the large timing run
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/huge-collatz/collatzfast/driver"
)

var (
	format     = flag.String("format", "text", "Output format: text, csv, or json")
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	verbose    = flag.Bool("v", false, "Verbose output with per-case diagnostics")
	largeBits  = flag.Uint("large-bits", 1_000_000, "Bit size of the large timing input, n = 2^large-bits + 1")
	skipLarge  = flag.Bool("skip-large", false, "Skip the large timing run")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "collatz - Collatz engine cross-validation harness\n\n")
		fmt.Fprintf(os.Stderr, "Usage: collatz [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	output := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "error closing output file: %v\n", cerr)
			}
		}()
		output = f
	}

	cfg := driver.DefaultConfig()
	cfg.Output = output
	cfg.Verbose = *verbose
	cfg.LargeBits = *largeBits

	h := driver.NewHarness(cfg)

	results := h.RunBattery()
	if !*skipLarge {
		if *verbose {
			fmt.Fprintf(os.Stderr, "timing n = 2^%d + 1 ...\n", *largeBits)
		}
		results = append(results, h.RunLarge())
	}

	var err error
	switch *format {
	case "json":
		err = h.PrintJSON(results)
	case "csv":
		err = h.PrintCSV(results)
	case "text":
		h.PrintText(results)
	default:
		fmt.Fprintf(os.Stderr, "unknown format: %s (use text, csv, or json)\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	if driver.AnyMismatch(results) {
		fmt.Fprintln(os.Stderr, "one or more engines disagreed with the expected step counts")
		os.Exit(1)
	}
}
