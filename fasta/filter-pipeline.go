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
	"context"
	"io"

	"github.com/exascience/pargo/pipeline"
)

type (
	// A RecordFilter receives a Record which it can modify in place. A
	// RecordFilter must not depend on any other record.
	RecordFilter func(*Record)

	// A RecordValidator receives a Record which it must not modify. It
	// returns a non-nil error if the record violates a constraint.
	// RecordValidators may keep state across records, for example to
	// count them.
	RecordValidator func(*Record) error
)

const (
	minBatchSize  = 16
	maxBatchSize  = 4096
	maxBatchBytes = 4 << 20
)

// A recordBatch carries the records of one pipeline batch, and the
// parse error that ended the input, if any, so that the error is seen
// only after all records before it.
type recordBatch struct {
	records []*Record
	err     error
}

// recordSource implements pipeline.Source for a Reader.
type recordSource struct {
	reader *Reader
	data   *recordBatch
	done   bool
}

// Err implements the corresponding method of pipeline.Source. Parse
// errors are delivered in-band with the batches instead.
func (src *recordSource) Err() error {
	return nil
}

// Prepare implements the corresponding method of pipeline.Source
func (src *recordSource) Prepare(_ context.Context) (size int) {
	return -1
}

// Fetch implements the corresponding method of pipeline.Source
func (src *recordSource) Fetch(size int) (fetched int) {
	if src.done {
		src.data = nil
		return 0
	}
	if size < 1 {
		size = 1
	}
	batch := &recordBatch{records: make([]*Record, 0, size)}
	for nofBytes := 0; len(batch.records) < size && nofBytes < maxBatchBytes; {
		rec, err := src.reader.Read()
		if err != nil {
			src.done = true
			if err != io.EOF {
				batch.err = err
			}
			break
		}
		batch.records = append(batch.records, rec)
		nofBytes += len(rec.Seq)
	}
	fetched = len(batch.records)
	if batch.err != nil && fetched == 0 {
		fetched = 1
	}
	if fetched == 0 {
		src.data = nil
		return 0
	}
	src.data = batch
	return fetched
}

// Data implements the corresponding method of pipeline.Source
func (src *recordSource) Data() interface{} {
	return src.data
}

// ComposeFilters returns a RecordFilter that applies the given filters
// in order. Nil entries are skipped. ComposeFilters returns nil if all
// filters are nil.
func ComposeFilters(filters []RecordFilter) RecordFilter {
	var recFilters []RecordFilter
	for _, f := range filters {
		if f != nil {
			recFilters = append(recFilters, f)
		}
	}
	switch len(recFilters) {
	case 0:
		return nil
	case 1:
		return recFilters[0]
	}
	return func(rec *Record) {
		for _, f := range recFilters {
			f(rec)
		}
	}
}

// ComposeValidators returns a RecordValidator that runs the given
// validators in order and stops at the first one that reports an error.
// Nil entries are skipped. ComposeValidators returns nil if all
// validators are nil.
func ComposeValidators(validators []RecordValidator) RecordValidator {
	var recValidators []RecordValidator
	for _, v := range validators {
		if v != nil {
			recValidators = append(recValidators, v)
		}
	}
	if len(recValidators) == 0 {
		return nil
	}
	return func(rec *Record) error {
		for _, v := range recValidators {
			if err := v(rec); err != nil {
				return err
			}
		}
		return nil
	}
}

// A Pipeline streams the records of a Reader through filters or
// validators.
//
// Batches of records are parsed ahead of time, but records are always
// filtered, validated and written in file order.
type Pipeline struct {
	reader     *Reader
	nofThreads int
}

// NewPipeline returns a Pipeline that reads records from reader.
func NewPipeline(reader *Reader) *Pipeline {
	return &Pipeline{reader: reader}
}

// NofThreads limits the number of goroutines that apply filters in
// parallel. If n < 1, the limit is runtime.GOMAXPROCS(0).
func (p *Pipeline) NofThreads(n int) {
	p.nofThreads = n
}

func (p *Pipeline) newPargoPipeline() *pipeline.Pipeline {
	var pp pipeline.Pipeline
	pp.Source(&recordSource{reader: p.reader})
	pp.SetVariableBatchSize(minBatchSize, maxBatchSize)
	return &pp
}

// Format applies the composed filters to each record and writes the
// results to writer, in file order. Format fails only on parse or I/O
// errors.
func (p *Pipeline) Format(filters []RecordFilter, writer *Writer) error {
	pp := p.newPargoPipeline()
	if filter := ComposeFilters(filters); filter != nil {
		limit := p.nofThreads
		if limit < 0 {
			limit = 0
		}
		pp.Add(pipeline.LimitedPar(limit, pipeline.Receive(func(_ int, data interface{}) interface{} {
			batch := data.(*recordBatch)
			for _, rec := range batch.records {
				filter(rec)
			}
			return batch
		})))
	}
	pp.Add(pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
		if pp.Err() != nil {
			return nil
		}
		batch := data.(*recordBatch)
		for _, rec := range batch.records {
			if err := writer.Write(rec); err != nil {
				pp.SetErr(err)
				return nil
			}
		}
		if batch.err != nil {
			pp.SetErr(batch.err)
		}
		return nil
	})))
	pp.Run()
	if err := pp.Err(); err != nil {
		return err
	}
	return writer.Flush()
}

// Validate runs the composed validators on each record, in file order,
// and stops at the first error, which is returned. Validate returns nil
// if the complete input passes all validators.
func (p *Pipeline) Validate(validators []RecordValidator) error {
	validator := ComposeValidators(validators)
	pp := p.newPargoPipeline()
	pp.Add(pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
		if pp.Err() != nil {
			return nil
		}
		batch := data.(*recordBatch)
		if validator != nil {
			for _, rec := range batch.records {
				if err := validator(rec); err != nil {
					pp.SetErr(err)
					return nil
				}
			}
		}
		if batch.err != nil {
			pp.SetErr(batch.err)
		}
		return nil
	})))
	pp.Run()
	return pp.Err()
}
