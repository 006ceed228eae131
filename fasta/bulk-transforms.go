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
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/exascience/fastkit/internal"
)

// A BulkTransform rewrites a whole FASTA file before it is parsed. It
// returns the name of the file that should be read next, which is either
// the given filename if nothing needed to change, or the path of the
// given Scratch file.
type BulkTransform func(filename string, scratch *Scratch) (string, error)

// ApplyBulkTransforms applies the given transforms in order, passing the
// result of each transform to the next one.
func ApplyBulkTransforms(filename string, scratch *Scratch, transforms ...BulkTransform) (string, error) {
	for _, transform := range transforms {
		if transform == nil {
			continue
		}
		var err error
		if filename, err = transform(filename, scratch); err != nil {
			return "", err
		}
	}
	return filename, nil
}

// A Scratch is a temporary file owned by a single run. Its name is
// chosen lazily, and stays the same for the lifetime of the Scratch, so
// that repeated writes replace earlier contents.
//
// Close must be called when the run ends, whether it succeeded or not.
type Scratch struct {
	dir, path string
}

// NewScratch returns a Scratch in the given directory, or in
// os.TempDir() if dir is empty. No file is created yet.
func NewScratch(dir string) *Scratch {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Scratch{dir: dir}
}

// Path returns the name of the scratch file.
func (s *Scratch) Path() string {
	if s.path == "" {
		s.path = filepath.Join(s.dir, "fastkit-"+uuid.New().String()+".fasta")
	}
	return s.path
}

// Create creates the scratch file, truncating it if it already exists.
func (s *Scratch) Create() (*os.File, error) {
	return os.Create(s.Path())
}

// Close removes the scratch file, if it was ever created.
func (s *Scratch) Close() error {
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// HeadlessHeader is the header line that RepairHeadless adds in front of
// files without a header.
const HeadlessHeader = ">unknown_sequence"

// RepairHeadlessChunkSize is the block size in which RepairHeadless
// copies file contents.
const RepairHeadlessChunkSize = 1 << 20

// IsHeadless reports whether the given file has sequence data before its
// first header line. Empty files and files that contain only whitespace
// are not headless.
func IsHeadless(filename string) (headless bool, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return false, err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	r := bufio.NewReader(file)
	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			return false, nil
		} else if err != nil {
			return false, err
		}
		if !isSpace(c) {
			return c != '>', nil
		}
	}
}

// RepairHeadless is a BulkTransform for files that consist of sequence
// lines only. It writes HeadlessHeader followed by the unchanged original
// contents to the scratch file, copying in blocks of
// RepairHeadlessChunkSize bytes. Files that already start with a header
// are passed through without creating the scratch file.
func RepairHeadless(filename string, scratch *Scratch) (result string, err error) {
	headless, err := IsHeadless(filename)
	if err != nil || !headless {
		return filename, err
	}
	in, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer func() {
		nerr := in.Close()
		if err == nil {
			err = nerr
		}
	}()
	out, err := scratch.Create()
	if err != nil {
		return "", err
	}
	defer func() {
		nerr := out.Close()
		if err == nil {
			err = nerr
		}
	}()
	if _, err = io.WriteString(out, HeadlessHeader+"\n"); err != nil {
		return "", err
	}
	buf := internal.ReserveByteBuffer(RepairHeadlessChunkSize)
	defer internal.ReleaseByteBuffer(buf)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, err = out.Write(buf[:n]); err != nil {
				return "", err
			}
		}
		if rerr == io.EOF {
			break
		} else if rerr != nil {
			return "", rerr
		}
	}
	return scratch.Path(), nil
}

// RestoreEscapes is a BulkTransform reserved for restoring characters
// that were escaped by upstream tools (for example newlines submitted
// through web forms). It currently returns the file unchanged.
func RestoreEscapes(filename string, _ *Scratch) (string, error) {
	return filename, nil
}
