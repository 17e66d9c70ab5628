// Package main provides the CLI entry point for jsonlint, a thin front end
// over the demjson decode/encode API (spec §6.3). It performs no core
// logic of its own: it parses flags, reads input documents, and calls
// demjson.Decode / demjson.Encode once per document.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/demjson/go-demjson"
)

const version = "1.0.0"

const copyrightNotice = `jsonlint (go-demjson)
Copyright 2013 Seth Bunce. All rights reserved.
Use of this source code is governed by a BSD-style license.`

type config struct {
	strict     bool
	verbose    bool
	quiet      bool
	compact    bool
	output     string
	inEnc      string
	outEnc     string
	showCopy   bool
	hadInvalid bool
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "jsonlint [flags] [file ...]",
		Short:         "Validate and reformat JSON/ECMAScript-superset documents",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			if cfg.showCopy {
				fmt.Println(copyrightNotice)
				return nil
			}
			return run(cfg, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&cfg.strict, "strict", false, "require strict RFC 7158 JSON instead of the ECMAScript superset")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "print a success message for each valid document")
	flags.BoolVarP(&cfg.quiet, "quiet", "q", false, "suppress error output; only the exit code reports validity")
	flags.BoolVarP(&cfg.compact, "compact", "c", false, "reformat output compactly instead of pretty-printed")
	flags.StringVarP(&cfg.output, "output", "o", "", "write reformatted output to this file instead of stdout")
	flags.StringVar(&cfg.inEnc, "input-encoding", "", "input transfer encoding (default: auto-detect)")
	flags.StringVar(&cfg.outEnc, "output-encoding", "", "output transfer encoding (default: same as text)")
	flags.BoolVar(&cfg.showCopy, "copyright", false, "print copyright information and exit")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jsonlint: %v\n", err)
		os.Exit(1)
	}
	if cfg.hadInvalid {
		os.Exit(1)
	}
}

func run(cfg *config, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	var inEnc demjson.Encoding
	if cfg.inEnc != "" {
		enc, ok := demjson.LookupCodec(cfg.inEnc)
		if !ok {
			return fmt.Errorf("unrecognized input encoding %q", cfg.inEnc)
		}
		inEnc = enc
	}

	out := os.Stdout
	if cfg.output != "" {
		f, err := os.Create(cfg.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	for _, arg := range args {
		data, err := readInput(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}

		if err := lintOne(cfg, out, arg, data, inEnc); err != nil {
			cfg.hadInvalid = true
			if !cfg.quiet {
				fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			}
			continue
		}
		if cfg.verbose {
			fmt.Fprintf(os.Stderr, "%s: valid\n", arg)
		}
	}

	return nil
}

func lintOne(cfg *config, out io.Writer, name string, data []byte, inEnc demjson.Encoding) error {
	strict := demjson.NewNonStrict()
	if cfg.strict {
		strict = demjson.NewStrict()
	}

	v, err := demjson.Decode(data, &demjson.DecodeOptions{Strictness: strict, Encoding: inEnc})
	if err != nil {
		return err
	}

	if cfg.output == "" && name == "-" && !cfg.verbose {
		// Lint-only mode on stdin with no explicit output sink: validity
		// check was the point, nothing to reformat.
		return nil
	}

	encOpts := &demjson.EncodeOptions{Strictness: strict, Compact: cfg.compact, SortKeys: true}
	if cfg.outEnc != "" {
		enc, ok := demjson.LookupCodec(cfg.outEnc)
		if !ok {
			return fmt.Errorf("unrecognized output encoding %q", cfg.outEnc)
		}
		encOpts.Encoding = enc
		b, err := demjson.EncodeBytes(v, encOpts)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}

	s, err := demjson.Encode(v, encOpts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, s)
	return err
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}
