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

import "fmt"

// DefaultLineWidth is the number of residues per line when records are
// formatted without an explicit line width.
const DefaultLineWidth = 60

// A Record represents one entry in a FASTA file.
type Record struct {
	// ID is the first whitespace-delimited token of the header line.
	ID string

	// Description is the full header line after the leading '>',
	// including the ID.
	Description string

	// Seq holds the residues of the record, without line breaks.
	Seq []byte
}

// NewRecord creates a Record for the given header line (without the
// leading '>') and sequence.
func NewRecord(description string, seq []byte) *Record {
	return &Record{
		ID:          idFromDescription(description),
		Description: description,
		Seq:         seq,
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

func idFromDescription(description string) string {
	i := 0
	for ; i < len(description); i++ {
		if !isSpace(description[i]) {
			break
		}
	}
	j := i
	for ; j < len(description); j++ {
		if isSpace(description[j]) {
			break
		}
	}
	return description[i:j]
}

// Header returns the header line of the record, without the leading
// '>'.
//
// The description is used as is if its first token is the ID. Otherwise
// the ID and the description are joined by a single space, so that the
// ID is always the first token of the resulting header line.
func (rec *Record) Header() string {
	switch {
	case rec.Description == "":
		return rec.ID
	case rec.ID == "", idFromDescription(rec.Description) == rec.ID:
		return rec.Description
	default:
		return rec.ID + " " + rec.Description
	}
}

// Format appends the FASTA representation of the record to buf and
// returns the extended buffer. Sequence lines are wrapped after width
// residues; if width <= 0, the sequence is written on a single line.
// A record with an empty sequence is formatted as a lone header line.
func (rec *Record) Format(buf []byte, width int) []byte {
	buf = append(buf, '>')
	buf = append(buf, rec.Header()...)
	buf = append(buf, '\n')
	seq := rec.Seq
	if width > 0 {
		for len(seq) > width {
			buf = append(buf, seq[:width]...)
			buf = append(buf, '\n')
			seq = seq[width:]
		}
	}
	if len(seq) > 0 {
		buf = append(buf, seq...)
		buf = append(buf, '\n')
	}
	return buf
}

// String returns the FASTA representation of the record, with the
// sequence wrapped at DefaultLineWidth.
func (rec *Record) String() string {
	return string(rec.Format(nil, DefaultLineWidth))
}

// A MalformedInputError is returned when input cannot be parsed as FASTA
// at all.
type MalformedInputError struct {
	Line   int
	Reason string
}

func (err *MalformedInputError) Error() string {
	return fmt.Sprintf("invalid fasta input on line %v - %v", err.Line, err.Reason)
}
