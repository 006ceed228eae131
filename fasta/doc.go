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

// Package fasta is a library for reading, formatting and writing FASTA
// files.
//
// A FASTA file is parsed into a stream of Record values, one per header
// line. Records can be passed through RecordFilter and RecordValidator
// functions in the order in which they occur in the file. The package
// uses the pargo library for expressing pipelines of such filters, see
// https://godoc.org/github.com/ExaScience/pargo/pipeline for details of
// pargo pipelines if necessary.
//
// Some inputs need to be rewritten before they can be parsed at all, for
// example files that lack a header line. Such whole-file rewrites are
// expressed as BulkTransform functions, which run before parsing and
// write their results to a Scratch file.
package fasta
