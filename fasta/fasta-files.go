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
	"bufio"
	"bytes"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// A Reader reads records from FASTA encoded input, one at a time.
//
// A Reader only moves forward. Parsing the same input again requires a
// new Reader on a freshly opened source.
//
// Lines that start with '>' begin a new record. All following lines up
// to the next header line or the end of input are concatenated to form
// the sequence of the record. Line terminators ("\n" or "\r\n") are
// removed, but other characters, including whitespace inside sequence
// lines, are kept as is. Blank lines before the first header are
// skipped. Any other content before the first header is reported as a
// MalformedInputError.
//
// It is not safe to call the methods of a Reader from multiple
// goroutines.
type Reader struct {
	r          *bufio.Reader
	line       int
	header     string
	haveHeader bool
	err        error
}

// NewReader returns a Reader that parses records from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) readLine() ([]byte, error) {
	line, err := r.r.ReadBytes('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return nil, io.EOF
		}
	} else if err != nil {
		return nil, err
	}
	r.line++
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, nil
}

func (r *Reader) readFirstHeader() error {
	for {
		line, err := r.readLine()
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if line[0] != '>' {
			return &MalformedInputError{Line: r.line, Reason: "sequence data before first header"}
		}
		r.header = string(line[1:])
		r.haveHeader = true
		return nil
	}
}

// Read returns the next record in the input. At the end of the input,
// Read returns io.EOF. Empty input yields io.EOF on the first call.
//
// Once Read returns an error, all subsequent calls return the same
// error.
func (r *Reader) Read() (*Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.haveHeader {
		if err := r.readFirstHeader(); err != nil {
			r.err = err
			return nil, err
		}
	}
	rec := NewRecord(r.header, nil)
	for {
		line, err := r.readLine()
		if err == io.EOF {
			r.haveHeader = false
			r.err = io.EOF
			return rec, nil
		} else if err != nil {
			r.err = err
			return nil, err
		}
		if len(line) > 0 && line[0] == '>' {
			r.header = string(line[1:])
			return rec, nil
		}
		rec.Seq = append(rec.Seq, line...)
	}
}

// ReadAll reads all remaining records. If an error other than io.EOF is
// encountered, the records read so far are returned together with the
// error.
func (r *Reader) ReadAll() (records []*Record, err error) {
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		} else if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// InputFile is a Reader on an open FASTA file.
type InputFile struct {
	*Reader
	file *os.File
}

// Open opens a FASTA file for reading.
func Open(filename string) (*InputFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return &InputFile{Reader: NewReader(file), file: file}, nil
}

// Close closes the underlying file.
func (f *InputFile) Close() error {
	return f.file.Close()
}

// A Writer formats records as FASTA text.
type Writer struct {
	// LineWidth is the number of residues per sequence line. If it is
	// <= 0, sequences are not wrapped. It can be changed between calls
	// to Write.
	LineWidth int

	w   *bufio.Writer
	buf []byte
}

// NewWriter returns a Writer that writes records to w, wrapping
// sequences at DefaultLineWidth.
func NewWriter(w io.Writer) *Writer {
	return &Writer{LineWidth: DefaultLineWidth, w: bufio.NewWriter(w)}
}

// Write formats a single record.
func (w *Writer) Write(rec *Record) error {
	w.buf = rec.Format(w.buf[:0], w.LineWidth)
	_, err := w.w.Write(w.buf)
	return err
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// CountRecords returns the number of header lines in the given FASTA
// file. The file is memory-mapped instead of parsed.
func CountRecords(filename string) (count int, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	stat, err := file.Stat()
	if err != nil {
		return 0, err
	}
	if stat.Size() == 0 {
		return 0, nil
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return 0, err
	}
	defer func() {
		nerr := unix.Munmap(data)
		if err == nil {
			err = nerr
		}
	}()
	if data[0] == '>' {
		count++
	}
	count += bytes.Count(data, []byte("\n>"))
	return count, nil
}
