// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refgenome

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/fai"
)

// FASTA is a Genome backed by an FAI indexed FASTA file. File access is
// implemented via mmapped file memory, so FASTA is safe for concurrent use.
type FASTA struct {
	f   *fai.File
	idx fai.Index
}

// Open opens the FASTA file at the given path. The FAI index is read from
// path+".fai" if it exists, otherwise it is constructed from the sequence.
func Open(path string) (*FASTA, error) {
	idx, err := readIndex(path)
	if err != nil {
		return nil, err
	}
	return OpenWithIndex(path, idx)
}

// OpenWithIndex opens the FASTA file at the given path and associates it
// with the specified index.
func OpenWithIndex(path string, idx fai.Index) (*FASTA, error) {
	f, err := fai.OpenFile(path, idx)
	if err != nil {
		return nil, err
	}
	return &FASTA{f: f, idx: idx}, nil
}

func readIndex(path string) (fai.Index, error) {
	r, err := os.Open(path + ".fai")
	if err == nil {
		defer r.Close()
		idx, err := fai.ReadFrom(r)
		if err != nil {
			return nil, fmt.Errorf("refgenome: failed to read index: %v", err)
		}
		return idx, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	idx, err := fai.NewIndex(f)
	if err != nil {
		return nil, fmt.Errorf("refgenome: failed to index sequence: %v", err)
	}
	return idx, nil
}

// Close closes the sequence file. Bases must not be called after Close.
func (f *FASTA) Close() error {
	err := f.f.Close()
	*f = FASTA{}
	return err
}

// Length returns the length of the named sequence and whether it exists.
func (f *FASTA) Length(chrom string) (int, bool) {
	rec, ok := f.idx[chrom]
	return rec.Length, ok
}

// Bases implements the Genome interface.
func (f *FASTA) Bases(chrom string, start, end int) ([]byte, error) {
	rec, ok := f.idx[chrom]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSequence, chrom)
	}
	if start < 1 || end < start || rec.Length < end {
		return nil, ErrRange
	}
	seq, err := f.f.SeqRange(chrom, start-1, end)
	if err != nil {
		return nil, err
	}
	defer seq.Close()
	b := make([]byte, end-start+1)
	_, err = io.ReadFull(seq, b)
	if err != nil {
		return nil, fmt.Errorf("refgenome: failed to read %s:%d-%d: %v", chrom, start, end, err)
	}
	return bytes.ToUpper(b), nil
}
