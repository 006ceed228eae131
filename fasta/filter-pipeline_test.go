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
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStripHeaderSpace(t *testing.T) {
	rec := readAll(t, ">contig_16 some bacterial sequence\nACGT\n")[0]
	StripHeaderSpace(rec)
	if rec.ID != "contig_16_some_bacterial_sequence" || rec.Description != "" {
		t.Error("StripHeaderSpace 1 failed:", rec.ID)
	}
	if s := rec.String(); s != ">contig_16_some_bacterial_sequence\nACGT\n" {
		t.Error("StripHeaderSpace 2 failed:", s)
	}
	StripHeaderSpace(rec)
	if rec.ID != "contig_16_some_bacterial_sequence" {
		t.Error("StripHeaderSpace 3 failed:", rec.ID)
	}
	rec = NewRecord("a\tb c", nil)
	StripHeaderSpace(rec)
	if rec.ID != "a_b_c" {
		t.Error("StripHeaderSpace 4 failed:", rec.ID)
	}
	rec = NewRecord("plain", []byte("AC"))
	StripHeaderSpace(rec)
	if rec.ID != "plain" || string(rec.Seq) != "AC" {
		t.Error("StripHeaderSpace 5 failed:", rec.ID)
	}
}

func TestUppercase(t *testing.T) {
	rec := NewRecord("Lower case", []byte("tgaTTGGta"))
	Uppercase(rec)
	if string(rec.Seq) != "TGATTGGTA" || rec.Description != "Lower case" {
		t.Error("Uppercase 1 failed:", string(rec.Seq))
	}
	Uppercase(rec)
	if string(rec.Seq) != "TGATTGGTA" {
		t.Error("Uppercase 2 failed:", string(rec.Seq))
	}
}

func TestFilterSelection(t *testing.T) {
	if kinds := (FilterSelection{}).Kinds(); len(kinds) != 0 {
		t.Error("empty FilterSelection failed")
	}
	kinds := FilterSelection{StripHeaderSpace: true, Uppercase: true}.Kinds()
	if len(kinds) != 2 || kinds[0] != StripHeaderSpaceFilter || kinds[1] != UppercaseFilter {
		t.Error("FilterSelection order failed")
	}
	if StripHeaderSpaceFilter.String() != "strip-header-space" || UppercaseFilter.String() != "uppercase" {
		t.Error("FilterKind names failed")
	}
	if len(FilterSelection{Uppercase: true}.Filters()) != 1 {
		t.Error("FilterSelection filters failed")
	}
}

func TestComposeFilters(t *testing.T) {
	if ComposeFilters(nil) != nil || ComposeFilters([]RecordFilter{nil}) != nil {
		t.Error("empty ComposeFilters failed")
	}
	var trace []string
	f := ComposeFilters([]RecordFilter{
		func(*Record) { trace = append(trace, "a") },
		nil,
		func(*Record) { trace = append(trace, "b") },
	})
	f(&Record{})
	if strings.Join(trace, "") != "ab" {
		t.Error("ComposeFilters order failed")
	}
}

func makeInput(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, ">seq%v record number %v\nacgt%v\n", i, i, strings.Repeat("a", i%100))
	}
	return sb.String()
}

func TestPipelineFormat(t *testing.T) {
	const n = 10000
	var out strings.Builder
	w := NewWriter(&out)
	w.LineWidth = 0
	p := NewPipeline(NewReader(strings.NewReader(makeInput(n))))
	if err := p.Format(FilterSelection{StripHeaderSpace: true, Uppercase: true}.Filters(), w); err != nil {
		t.Fatal(err)
	}
	records := readAll(t, out.String())
	if len(records) != n {
		t.Fatalf("Format returned %v records", len(records))
	}
	for i, rec := range records {
		if rec.ID != fmt.Sprintf("seq%v_record_number_%v", i, i) {
			t.Fatal("Format order failed at record", i, rec.ID)
		}
		if string(rec.Seq) != "ACGT"+strings.Repeat("A", i%100) {
			t.Fatal("Format uppercase failed at record", i)
		}
	}
}

func TestPipelineFormatUnchanged(t *testing.T) {
	var out strings.Builder
	p := NewPipeline(NewReader(strings.NewReader(testInput)))
	if err := p.Format(nil, NewWriter(&out)); err != nil {
		t.Fatal(err)
	}
	expected := ">contig_16 some bacterial sequence\nACGTACGTACGTAC\n" +
		">contig_17\tanother bacterial sequence\ntgaTTGGta\n" +
		">empty\n" +
		">last one\nAC GTNN\n"
	if out.String() != expected {
		t.Error("unfiltered Format failed:", out.String())
	}
}

func TestPipelineFormatMalformed(t *testing.T) {
	var out strings.Builder
	p := NewPipeline(NewReader(strings.NewReader("ACGT\n>a\nAC\n")))
	err := p.Format(nil, NewWriter(&out))
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Error("Format did not report a MalformedInputError:", err)
	}
}

func TestPipelineValidate(t *testing.T) {
	const n = 10000
	errStop := errors.New("stop")
	count := 0
	p := NewPipeline(NewReader(strings.NewReader(makeInput(n))))
	err := p.Validate([]RecordValidator{func(rec *Record) error {
		count++
		if rec.ID == "seq5000" {
			return errStop
		}
		return nil
	}})
	if err != errStop {
		t.Error("Validate failed to report the error:", err)
	}
	if count != 5001 {
		t.Error("Validate did not stop at the first error:", count)
	}

	count = 0
	p = NewPipeline(NewReader(strings.NewReader(makeInput(n))))
	if err := p.Validate([]RecordValidator{func(*Record) error { count++; return nil }}); err != nil {
		t.Error(err)
	}
	if count != n {
		t.Error("Validate skipped records:", count)
	}

	p = NewPipeline(NewReader(strings.NewReader("")))
	if err := p.Validate(nil); err != nil {
		t.Error("empty Validate failed:", err)
	}
}
