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

package fasta

import (
	"bytes"
	"log"
	"strings"
)

var headerSpaceReplacer = strings.NewReplacer(" ", "_", "\t", "_")

/*
A filter for collapsing the complete header line into the ID. Spaces
and tabs are replaced by underscores, and the description is cleared,
so that the record is written back with the cleaned header only.

Applying the filter to a header without spaces or tabs leaves the
header unchanged.
*/
func StripHeaderSpace(rec *Record) {
	rec.ID = headerSpaceReplacer.Replace(rec.Header())
	rec.Description = ""
}

/*
A filter for converting all sequence characters to upper case. The
header is not changed.
*/
func Uppercase(rec *Record) {
	rec.Seq = bytes.ToUpper(rec.Seq)
}

// A FilterKind identifies one of the built-in record filters.
type FilterKind int

const (
	// StripHeaderSpaceFilter selects StripHeaderSpace.
	StripHeaderSpaceFilter FilterKind = iota

	// UppercaseFilter selects Uppercase.
	UppercaseFilter
)

func (kind FilterKind) String() string {
	switch kind {
	case StripHeaderSpaceFilter:
		return "strip-header-space"
	case UppercaseFilter:
		return "uppercase"
	default:
		return "unknown filter"
	}
}

// Filter returns the RecordFilter for the given kind.
func (kind FilterKind) Filter() RecordFilter {
	switch kind {
	case StripHeaderSpaceFilter:
		return StripHeaderSpace
	case UppercaseFilter:
		return Uppercase
	default:
		log.Panicf("invalid filter kind %v", int(kind))
		return nil
	}
}

// A FilterSelection records which built-in filters are requested.
type FilterSelection struct {
	StripHeaderSpace bool
	Uppercase        bool
}

// Kinds returns the selected filter kinds in application order: header
// filters before sequence filters.
func (sel FilterSelection) Kinds() (kinds []FilterKind) {
	if sel.StripHeaderSpace {
		kinds = append(kinds, StripHeaderSpaceFilter)
	}
	if sel.Uppercase {
		kinds = append(kinds, UppercaseFilter)
	}
	return kinds
}

// Filters returns the selected filters in application order.
func (sel FilterSelection) Filters() (filters []RecordFilter) {
	for _, kind := range sel.Kinds() {
		filters = append(filters, kind.Filter())
	}
	return filters
}
