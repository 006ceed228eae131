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

// fastkit pre-processes FASTA files before they are handed to
// downstream tools: it normalizes formatting, and validates sequence
// content against alphabet and count constraints.
//
// Please see https://github.com/exascience/fastkit for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/exascience/fastkit/cmd"
	"github.com/exascience/fastkit/utils"
)

const subcommands = "Available commands: format, validate"

func printHelp() {
	fmt.Fprintln(os.Stderr, subcommands)
	fmt.Fprint(os.Stderr, "\n", cmd.FormatHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ValidateHelp)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Please specify a fastkit subcommand.")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "format":
		fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
		err = cmd.Format()
	case "validate":
		fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
		err = cmd.Validate()
	case "version", "-version", "--version", "-v":
		fmt.Println(utils.ProgramName, utils.ProgramVersion)
	case "help", "-help", "--help", "-h", "--h":
		fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "Invalid subcommand: %v\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintf(log.Writer(), "%v: %v\n", cmd.ErrorKind(err), err)
		os.Exit(1)
	}
}
