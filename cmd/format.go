// fastkit: routine pre-processing of FASTA files.
// Copyright (c) 2020-2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/fastkit/blob/master/LICENSE.txt>.

package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/exascience/fastkit/fasta"
)

// FormatHelp is the help string for this command.
const FormatHelp = "format parameters:\n" +
	"fastkit format fasta-file\n" +
	"[--strip-header-space]\n" +
	"[--uppercase]\n" +
	"[--headless]\n" +
	"[--line-width nr]\n" +
	"[--tmp-dir path]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

type formatOptions struct {
	filters    fasta.FilterSelection
	headless   bool
	lineWidth  int
	tmpDir     string
	nofThreads int
	timed      bool
	profile    string
}

// runFormat writes the formatted records of input to out. The scratch
// file of the headless repair is removed before runFormat returns.
func runFormat(input string, opts formatOptions, out io.Writer) (err error) {
	scratch := fasta.NewScratch(opts.tmpDir)
	defer func() {
		nerr := scratch.Close()
		if err == nil {
			err = nerr
		}
	}()
	phase := int64(1)
	var filename string
	err = timedRun(opts.timed, opts.profile, "Preparing input.", phase, func() (err error) {
		filename, err = prepareInput(input, opts.headless, scratch)
		return err
	})
	if err != nil {
		return err
	}
	phase++
	return timedRun(opts.timed, opts.profile, "Formatting records.", phase, func() (err error) {
		in, err := fasta.Open(filename)
		if err != nil {
			return err
		}
		defer func() {
			nerr := in.Close()
			if err == nil {
				err = nerr
			}
		}()
		writer := fasta.NewWriter(out)
		writer.LineWidth = opts.lineWidth
		p := fasta.NewPipeline(in.Reader)
		p.NofThreads(opts.nofThreads)
		return p.Format(opts.filters.Filters(), writer)
	})
}

// Format implements the fastkit format command.
func Format() error {
	var (
		opts    formatOptions
		logPath string
	)

	var flags flag.FlagSet

	flags.BoolVar(&opts.filters.StripHeaderSpace, "strip-header-space", false, "replace spaces in headers with underscores, and use the whole header as the identifier")
	flags.BoolVar(&opts.filters.Uppercase, "uppercase", false, "convert all sequence characters to upper case")
	flags.BoolVar(&opts.headless, "headless", false, "add a header to files that consist of sequence lines only")
	flags.IntVar(&opts.lineWidth, "line-width", fasta.DefaultLineWidth, "number of residues per output line, or 0 for no wrapping")
	flags.StringVar(&opts.tmpDir, "tmp-dir", "", "directory for temporary files")
	flags.IntVar(&opts.nofThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&opts.timed, "timed", false, "measure the runtime")
	flags.StringVar(&opts.profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 3, FormatHelp)

	input := getFilename(os.Args[2], FormatHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkDirectory("--tmp-dir", opts.tmpDir) {
		sanityChecksFailed = true
	}
	if opts.lineWidth < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid line-width: ", opts.lineWidth)
	}
	if opts.nofThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", opts.nofThreads)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, FormatHelp)
		os.Exit(1)
	}

	return runFormat(input, opts, os.Stdout)
}
