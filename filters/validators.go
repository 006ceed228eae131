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

package filters

import (
	"fmt"
	"log"

	"github.com/exascience/fastkit/fasta"
)

// A ValidationError reports a violation of a content constraint.
type ValidationError struct {
	Message string
}

func (err *ValidationError) Error() string {
	return err.Message
}

func validationErrorf(format string, v ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}

/*
A validator that checks that every residue is a member of the
alphabet of the given sequence type, ignoring case. It reports the
position of the first residue that is not. CheckAlphabet returns nil
for Undeclared.
*/
func CheckAlphabet(seqType SequenceType) fasta.RecordValidator {
	alphabet := seqType.Alphabet()
	if alphabet == nil {
		return nil
	}
	return func(rec *fasta.Record) error {
		if pos := alphabet.FirstInvalid(rec.Seq); pos >= 0 {
			return validationErrorf("Sequence is not valid %v. Invalid residue at position: %v (record %v).", seqType, pos, rec.ID)
		}
		return nil
	}
}

/*
A validator that rejects the unknown residue code of the given
sequence type (N for DNA, X for protein), in either case.

Without a declared sequence type there is no unknown residue to look
for, so only a warning is logged and no validator is returned.
*/
func CheckNoUnknown(seqType SequenceType) fasta.RecordValidator {
	alphabet := seqType.Alphabet()
	if alphabet == nil {
		log.Println("Warning: cannot check for unknown residues if no sequence type is given (requires --dna or --protein).")
		return nil
	}
	var kind string
	switch seqType {
	case DNA:
		kind = "DNA"
	case Protein:
		kind = "amino acid"
	}
	return func(rec *fasta.Record) error {
		if pos := alphabet.FirstUnknown(rec.Seq); pos >= 0 {
			return validationErrorf("Unknown %v residues are not permitted. Invalid residue at position: %v (record %v).", kind, pos, rec.ID)
		}
		return nil
	}
}

/*
A validator that counts records and fails as soon as there are more
than max of them. To report the actual number of records, recount is
called once at that point; its error, if any, is returned instead.
CheckMaxRecordCount returns nil if max <= 0.
*/
func CheckMaxRecordCount(max int, recount func() (int, error)) fasta.RecordValidator {
	if max <= 0 {
		return nil
	}
	count := 0
	return func(_ *fasta.Record) error {
		count++
		if count <= max {
			return nil
		}
		total := count
		if recount != nil {
			n, err := recount()
			if err != nil {
				return err
			}
			if n > total {
				total = n
			}
		}
		return validationErrorf("A maximum of %v sequences is permitted (%v sequences were read from the input file).", max, total)
	}
}

// A Validation describes the checks requested for one input file.
type Validation struct {
	SequenceType SequenceType

	// NoUnknown rejects unknown residue codes.
	NoUnknown bool

	// MaxRecords is the maximum number of records, or 0 for no limit.
	MaxRecords int

	// Recount returns the total number of records in the input. It is
	// only called when MaxRecords is exceeded.
	Recount func() (int, error)
}

// Validators returns fresh validators for the requested checks, in
// execution order: alphabet, unknown residues, record count. Each call
// returns validators with their own record counter.
func (v Validation) Validators() (validators []fasta.RecordValidator) {
	if check := CheckAlphabet(v.SequenceType); check != nil {
		validators = append(validators, check)
	}
	if v.NoUnknown {
		if check := CheckNoUnknown(v.SequenceType); check != nil {
			validators = append(validators, check)
		}
	}
	if check := CheckMaxRecordCount(v.MaxRecords, v.Recount); check != nil {
		validators = append(validators, check)
	}
	return validators
}
