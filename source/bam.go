// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// BAM is a Source backed by an indexed BAM file. Each query opens its own
// reader so a BAM may be queried concurrently.
type BAM struct {
	path string
	h    *sam.Header
	refs map[string]*sam.Reference

	mu  sync.Mutex // Protects idx.
	idx *bam.Index
}

// OpenBAM opens the BAM file at path using the BAI index at index. If index
// is empty path+".bai" is used. If the index file does not exist the index
// is built by reading the complete BAM file.
func OpenBAM(path, index string) (*BAM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br, err := bam.NewReader(f, 1)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open BAM: %v", err)
	}
	h := br.Header()
	br.Close()

	if index == "" {
		index = path + ".bai"
	}
	idx, err := readIndex(index)
	if os.IsNotExist(err) {
		idx, err = buildIndex(path)
	}
	if err != nil {
		return nil, err
	}

	b := &BAM{path: path, h: h, idx: idx, refs: make(map[string]*sam.Reference)}
	for _, r := range h.Refs() {
		b.refs[r.Name()] = r
	}
	return b, nil
}

func readIndex(path string) (*bam.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	idx, err := bam.ReadIndex(f)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read index: %v", err)
	}
	return idx, nil
}

// buildIndex returns a BAI index for the BAM file at path.
func buildIndex(path string) (*bam.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br, err := bam.NewReader(f, 1)
	if err != nil {
		return nil, fmt.Errorf("source: failed to open BAM: %v", err)
	}
	defer br.Close()
	var idx bam.Index
	for {
		r, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: failed to read BAM record: %v", err)
		}
		err = idx.Add(r, br.LastChunk())
		if err != nil {
			return nil, fmt.Errorf("source: failed to index BAM record: %v", err)
		}
	}
	return &idx, nil
}

// WriteIndex writes the BAI index of b to w.
func (b *BAM) WriteIndex(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bam.WriteIndex(w, b.idx)
}

// Header returns the SAM header of the BAM file.
func (b *BAM) Header() *sam.Header { return b.h }

// Query returns an iterator over the records overlapping reg.
func (b *BAM) Query(reg Region) (Iterator, error) {
	ref, ok := b.refs[reg.Chrom]
	if !ok {
		return nil, fmt.Errorf("source: no reference %q", reg.Chrom)
	}
	beg := max(reg.Start-1, 0)
	end := reg.End
	if end == 0 || end > ref.Len() {
		end = ref.Len()
	}
	b.mu.Lock()
	chunks, err := b.idx.Chunks(ref, beg, end)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	br, f, err := b.open()
	if err != nil {
		return nil, err
	}
	it, err := bam.NewIterator(br, chunks)
	if err != nil {
		br.Close()
		f.Close()
		return nil, fmt.Errorf("source: failed to seek to %v: %v", reg, err)
	}
	return &bamIterator{
		Iterator: &filter{Iterator: it, keep: reg.overlaps},
		br:       br,
		f:        f,
	}, nil
}

// Unmapped returns an iterator over the records without a reference
// sequence. The complete file is read.
func (b *BAM) Unmapped() (Iterator, error) {
	br, f, err := b.open()
	if err != nil {
		return nil, err
	}
	return &bamIterator{
		Iterator: &filter{Iterator: &reader{br: br}, keep: unplaced},
		br:       br,
		f:        f,
	}, nil
}

func (b *BAM) open() (*bam.Reader, *os.File, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return nil, nil, err
	}
	br, err := bam.NewReader(f, 1)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("source: failed to open BAM: %v", err)
	}
	return br, f, nil
}

// bamIterator closes its BAM reader and file when it is closed.
type bamIterator struct {
	Iterator
	br *bam.Reader
	f  *os.File
}

func (i *bamIterator) Close() error {
	err := i.Iterator.Close()
	if cerr := i.br.Close(); err == nil {
		err = cerr
	}
	if cerr := i.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// reader is an Iterator over all the records of a BAM reader.
type reader struct {
	br  *bam.Reader
	rec *sam.Record
	err error
}

func (r *reader) Next() bool {
	if r.err != nil {
		return false
	}
	r.rec, r.err = r.br.Read()
	return r.err == nil
}

func (r *reader) Record() *sam.Record { return r.rec }

func (r *reader) Error() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}

func (r *reader) Close() error { return r.Error() }
