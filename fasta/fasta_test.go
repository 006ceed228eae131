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
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testInput = ">contig_16 some bacterial sequence\n" +
	"ACGTACGTAC\n" +
	"GTAC\n" +
	">contig_17\tanother bacterial sequence\r\n" +
	"tgaTTGGta\r\n" +
	">empty\n" +
	">last one\n" +
	"AC GT\n" +
	"\n" +
	"NN"

func readAll(t *testing.T, input string) []*Record {
	records, err := NewReader(strings.NewReader(input)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestRead(t *testing.T) {
	records := readAll(t, testInput)
	if len(records) != 4 {
		t.Fatalf("Read returned %v records instead of 4", len(records))
	}
	if rec := records[0]; rec.ID != "contig_16" || rec.Description != "contig_16 some bacterial sequence" || string(rec.Seq) != "ACGTACGTACGTAC" {
		t.Error("Read 1 failed:", rec.ID, rec.Description, string(rec.Seq))
	}
	if rec := records[1]; rec.ID != "contig_17" || rec.Description != "contig_17\tanother bacterial sequence" || string(rec.Seq) != "tgaTTGGta" {
		t.Error("Read 2 failed:", rec.ID, rec.Description, string(rec.Seq))
	}
	if rec := records[2]; rec.ID != "empty" || len(rec.Seq) != 0 {
		t.Error("Read 3 failed:", rec.ID, string(rec.Seq))
	}
	if rec := records[3]; rec.ID != "last" || string(rec.Seq) != "AC GTNN" {
		t.Error("Read 4 failed:", rec.ID, string(rec.Seq))
	}
}

func TestReadEmpty(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	if _, err := r.Read(); err != io.EOF {
		t.Error("empty Read failed:", err)
	}
	if records := readAll(t, "\n  \n"); len(records) != 0 {
		t.Error("blank Read failed")
	}
	if records := readAll(t, "\n\n>a\nAC\n"); len(records) != 1 || records[0].ID != "a" {
		t.Error("leading blank lines Read failed")
	}
}

func TestReadMalformed(t *testing.T) {
	r := NewReader(strings.NewReader("\nACGT\n>a\nAC\n"))
	_, err := r.Read()
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatal("headless Read failed to report a MalformedInputError:", err)
	}
	if malformed.Line != 2 {
		t.Error("headless Read reported line", malformed.Line)
	}
	if _, nerr := r.Read(); nerr != err {
		t.Error("Read after error failed:", nerr)
	}
}

func TestIDFromDescription(t *testing.T) {
	if id := idFromDescription("a b c"); id != "a" {
		t.Error("idFromDescription 1 failed:", id)
	}
	if id := idFromDescription("  a\tb"); id != "a" {
		t.Error("idFromDescription 2 failed:", id)
	}
	if id := idFromDescription("abc"); id != "abc" {
		t.Error("idFromDescription 3 failed:", id)
	}
	if id := idFromDescription(""); id != "" {
		t.Error("idFromDescription 4 failed:", id)
	}
}

func TestHeader(t *testing.T) {
	if h := (&Record{ID: "a", Description: "a b"}).Header(); h != "a b" {
		t.Error("Header 1 failed:", h)
	}
	if h := (&Record{ID: "a"}).Header(); h != "a" {
		t.Error("Header 2 failed:", h)
	}
	if h := (&Record{ID: "x", Description: "a b"}).Header(); h != "x a b" {
		t.Error("Header 3 failed:", h)
	}
	if h := (&Record{Description: " a"}).Header(); h != " a" {
		t.Error("Header 4 failed:", h)
	}
}

func TestFormat(t *testing.T) {
	rec := NewRecord("seq1 test", []byte(strings.Repeat("A", 130)))
	expected := ">seq1 test\n" + strings.Repeat("A", 60) + "\n" + strings.Repeat("A", 60) + "\n" + strings.Repeat("A", 10) + "\n"
	if s := rec.String(); s != expected {
		t.Error("Format 1 failed:", s)
	}
	if s := string(rec.Format(nil, 0)); s != ">seq1 test\n"+strings.Repeat("A", 130)+"\n" {
		t.Error("Format 2 failed:", s)
	}
	rec.Seq = []byte(strings.Repeat("C", 60))
	if s := string(rec.Format(nil, 60)); s != ">seq1 test\n"+strings.Repeat("C", 60)+"\n" {
		t.Error("Format 3 failed:", s)
	}
	if s := NewRecord("empty", nil).String(); s != ">empty\n" {
		t.Error("Format 4 failed:", s)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, width := range []int{0, 3, 60} {
		records := readAll(t, testInput)
		var out strings.Builder
		w := NewWriter(&out)
		w.LineWidth = width
		for _, rec := range records {
			if err := w.Write(rec); err != nil {
				t.Fatal(err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		again := readAll(t, out.String())
		if len(again) != len(records) {
			t.Fatalf("round trip with width %v returned %v records", width, len(again))
		}
		for i, rec := range records {
			if again[i].ID != rec.ID || again[i].Description != rec.Description || string(again[i].Seq) != string(rec.Seq) {
				t.Error("round trip failed for record", i, "with width", width)
			}
		}
	}
}

func TestCountRecords(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "test.fasta")
	if err := os.WriteFile(filename, []byte(testInput), 0600); err != nil {
		t.Fatal(err)
	}
	if n, err := CountRecords(filename); err != nil || n != 4 {
		t.Error("CountRecords failed:", n, err)
	}
	empty := filepath.Join(dir, "empty.fasta")
	if err := os.WriteFile(empty, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if n, err := CountRecords(empty); err != nil || n != 0 {
		t.Error("empty CountRecords failed:", n, err)
	}
	if _, err := CountRecords(filepath.Join(dir, "missing.fasta")); !os.IsNotExist(err) {
		t.Error("missing CountRecords failed:", err)
	}
}

func TestOpen(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.fasta")
	if err := os.WriteFile(filename, []byte(testInput), 0600); err != nil {
		t.Fatal(err)
	}
	in, err := Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	records, err := in.ReadAll()
	if err != nil {
		t.Error(err)
	}
	if len(records) != 4 {
		t.Error("Open returned", len(records), "records")
	}
	if err := in.Close(); err != nil {
		t.Error(err)
	}
}
