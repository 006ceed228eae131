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
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// A SequenceType declares the kind of residues a FASTA file contains.
type SequenceType int

const (
	// Undeclared means that no sequence type was given.
	Undeclared SequenceType = iota

	// DNA sequences use the IUPAC nucleotide codes A, T, G, C and N.
	DNA

	// Protein sequences use the IUPAC amino acid codes.
	Protein
)

func (t SequenceType) String() string {
	switch t {
	case DNA:
		return "DNA"
	case Protein:
		return "protein"
	default:
		return "undeclared"
	}
}

// ParseSequenceType converts "dna" or "protein" (in any case) to a
// SequenceType. The empty string yields Undeclared.
func ParseSequenceType(s string) (SequenceType, error) {
	switch strings.ToLower(s) {
	case "":
		return Undeclared, nil
	case "dna":
		return DNA, nil
	case "protein":
		return Protein, nil
	default:
		return Undeclared, fmt.Errorf("invalid sequence type %v", s)
	}
}

// An Alphabet is a fixed set of permitted residue characters. Membership
// tests are case-insensitive.
type Alphabet struct {
	residues *bitset.BitSet
	unknown  byte
}

func newAlphabet(residues string, unknown byte) *Alphabet {
	set := bitset.New(256)
	for i := 0; i < len(residues); i++ {
		c := residues[i]
		set.Set(uint(c))
		set.Set(uint(c | 0x20))
	}
	return &Alphabet{residues: set, unknown: unknown}
}

const (
	// DNAResidues are the characters permitted in DNA sequences.
	DNAResidues = "ATGCN"

	// ProteinResidues are the characters permitted in protein
	// sequences: the 20 standard amino acids, U (selenocysteine), and
	// the ambiguity codes B, Z and X.
	ProteinResidues = "ABCDEFGHIKLMNPQRSTUVWYZX"
)

var (
	dnaAlphabet     = newAlphabet(DNAResidues, 'N')
	proteinAlphabet = newAlphabet(ProteinResidues, 'X')
)

// Alphabet returns the alphabet for the sequence type, or nil if the type
// is Undeclared.
func (t SequenceType) Alphabet() *Alphabet {
	switch t {
	case DNA:
		return dnaAlphabet
	case Protein:
		return proteinAlphabet
	default:
		return nil
	}
}

// Contains reports whether c is a member of the alphabet.
func (a *Alphabet) Contains(c byte) bool {
	return a.residues.Test(uint(c))
}

// FirstInvalid returns the 0-based position of the first character in
// seq that is not a member of the alphabet, or -1.
func (a *Alphabet) FirstInvalid(seq []byte) int {
	for i, c := range seq {
		if !a.residues.Test(uint(c)) {
			return i
		}
	}
	return -1
}

// Unknown returns the upper-case residue code that stands for an
// unknown residue in this alphabet.
func (a *Alphabet) Unknown() byte {
	return a.unknown
}

// FirstUnknown returns the 0-based position of the first unknown residue
// in seq, in either case, or -1.
func (a *Alphabet) FirstUnknown(seq []byte) int {
	lower := a.unknown | 0x20
	for i, c := range seq {
		if c == a.unknown || c == lower {
			return i
		}
	}
	return -1
}
