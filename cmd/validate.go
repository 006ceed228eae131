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
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/exascience/fastkit/fasta"
	"github.com/exascience/fastkit/filters"
)

// ValidateHelp is the help string for this command.
const ValidateHelp = "validate parameters:\n" +
	"fastkit validate fasta-file\n" +
	"[--dna | --protein]\n" +
	"[--no-unknown]\n" +
	"[--sequence-count nr]\n" +
	"[--headless]\n" +
	"[--tmp-dir path]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// ValidatedMessage is written to stderr when validation succeeds.
const ValidatedMessage = "File content validated"

type validateOptions struct {
	sequenceType filters.SequenceType
	noUnknown    bool
	maxRecords   int
	headless     bool
	tmpDir       string
	timed        bool
	profile      string
}

// runValidate validates the records of input. It returns nil if all
// requested checks pass, and the first violation otherwise. The scratch
// file of the headless repair is removed before runValidate returns.
func runValidate(input string, opts validateOptions) (err error) {
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
	return timedRun(opts.timed, opts.profile, "Validating records.", phase, func() (err error) {
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
		validation := filters.Validation{
			SequenceType: opts.sequenceType,
			NoUnknown:    opts.noUnknown,
			MaxRecords:   opts.maxRecords,
			Recount:      func() (int, error) { return fasta.CountRecords(filename) },
		}
		return fasta.NewPipeline(in.Reader).Validate(validation.Validators())
	})
}

// Validate implements the fastkit validate command.
func Validate() error {
	var (
		dna, protein bool
		opts         validateOptions
		logPath      string
	)

	var flags flag.FlagSet

	flags.BoolVar(&dna, "dna", false, "validate as IUPAC DNA sequences")
	flags.BoolVar(&protein, "protein", false, "validate as IUPAC protein sequences")
	flags.BoolVar(&opts.noUnknown, "no-unknown", false, "reject unknown IUPAC residues (N or X), requires --dna or --protein")
	flags.IntVar(&opts.maxRecords, "sequence-count", 0, "maximum number of sequences that are permitted")
	flags.BoolVar(&opts.headless, "headless", false, "add a header to files that consist of sequence lines only")
	flags.StringVar(&opts.tmpDir, "tmp-dir", "", "directory for temporary files")
	flags.BoolVar(&opts.timed, "timed", false, "measure the runtime")
	flags.StringVar(&opts.profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 3, ValidateHelp)

	input := getFilename(os.Args[2], ValidateHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkDirectory("--tmp-dir", opts.tmpDir) {
		sanityChecksFailed = true
	}
	switch {
	case dna && protein:
		sanityChecksFailed = true
		log.Println("Error: --dna and --protein cannot be combined.")
	case dna:
		opts.sequenceType = filters.DNA
	case protein:
		opts.sequenceType = filters.Protein
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "sequence-count" && opts.maxRecords < 1 {
			sanityChecksFailed = true
			log.Println("Error: Invalid sequence-count: ", opts.maxRecords)
		}
	})

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, ValidateHelp)
		os.Exit(1)
	}

	if err := runValidate(input, opts); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintln(log.Writer(), ValidatedMessage)
	return nil
}
