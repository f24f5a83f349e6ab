// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source provides region based access to alignment records.
package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/hts/sam"
)

// Region is a reference interval. Start and End are 1-based and inclusive.
// A zero End indicates the end of the reference sequence.
type Region struct {
	Chrom      string
	Start, End int
}

// ParseRegion parses a region in the form chrom, chrom:start or
// chrom:start-end.
func ParseRegion(s string) (Region, error) {
	if s == "" {
		return Region{}, errors.New("source: empty region")
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return Region{Chrom: s, Start: 1}, nil
	}
	reg := Region{Chrom: s[:i]}
	if reg.Chrom == "" {
		return Region{}, fmt.Errorf("source: missing reference name in region %q", s)
	}
	span := strings.ReplaceAll(s[i+1:], ",", "")
	beg, end, hasEnd := strings.Cut(span, "-")
	var err error
	reg.Start, err = strconv.Atoi(beg)
	if err != nil {
		return Region{}, fmt.Errorf("source: invalid region start %q: %v", s, err)
	}
	if hasEnd {
		reg.End, err = strconv.Atoi(end)
		if err != nil {
			return Region{}, fmt.Errorf("source: invalid region end %q: %v", s, err)
		}
	}
	if reg.Start < 1 || (hasEnd && reg.End < reg.Start) {
		return Region{}, fmt.Errorf("source: invalid region interval %q", s)
	}
	return reg, nil
}

// String returns the region in samtools notation.
func (r Region) String() string {
	if r.End == 0 {
		if r.Start <= 1 {
			return r.Chrom
		}
		return fmt.Sprintf("%s:%d", r.Chrom, r.Start)
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// Contains returns whether the 1-based position pos on chrom is within r.
func (r Region) Contains(chrom string, pos int) bool {
	return chrom == r.Chrom && pos >= r.Start && (r.End == 0 || pos <= r.End)
}

// overlaps returns whether the record rec is aligned to r.
// Records without CIGAR operations are treated as covering
// a single base.
func (r Region) overlaps(rec *sam.Record) bool {
	if rec.Ref == nil || rec.Ref.Name() != r.Chrom {
		return false
	}
	beg := rec.Pos
	end := max(rec.End(), beg+1)
	return end > r.Start-1 && (r.End == 0 || beg < r.End)
}

// Partition splits every reference in h into regions of at most size bases.
// If size is not positive each reference is returned as a single region.
func Partition(h *sam.Header, size int) []Region {
	var regs []Region
	for _, ref := range h.Refs() {
		n := ref.Len()
		if size <= 0 || n <= 0 {
			regs = append(regs, Region{Chrom: ref.Name(), Start: 1, End: n})
			continue
		}
		for beg := 1; beg <= n; beg += size {
			regs = append(regs, Region{Chrom: ref.Name(), Start: beg, End: min(beg+size-1, n)})
		}
	}
	return regs
}

// Iterator is an alignment record iterator. It is satisfied by *bam.Iterator.
type Iterator interface {
	// Next advances the iterator and returns whether a record is available.
	Next() bool
	// Record returns the current record.
	Record() *sam.Record
	// Error returns the first non-EOF error encountered.
	Error() error
	// Close releases the resources held by the iterator.
	Close() error
}

// Source is a collection of alignment records.
type Source interface {
	// Header returns the SAM header of the source.
	Header() *sam.Header
	// Query returns an iterator over the records overlapping reg.
	Query(reg Region) (Iterator, error)
	// Unmapped returns an iterator over records without a
	// reference sequence.
	Unmapped() (Iterator, error)
}

// filter is an Iterator returning the records of an underlying
// iterator that satisfy keep.
type filter struct {
	Iterator
	keep func(*sam.Record) bool
}

func (f *filter) Next() bool {
	for f.Iterator.Next() {
		if f.keep(f.Record()) {
			return true
		}
	}
	return false
}

func unplaced(rec *sam.Record) bool { return rec.Ref == nil }

// slice is an Iterator over in-memory records.
type slice struct {
	recs []*sam.Record
	rec  *sam.Record
}

func (s *slice) Next() bool {
	if len(s.recs) == 0 {
		s.rec = nil
		return false
	}
	s.rec, s.recs = s.recs[0], s.recs[1:]
	return true
}

func (s *slice) Record() *sam.Record { return s.rec }
func (s *slice) Error() error        { return nil }
func (s *slice) Close() error        { s.recs = nil; return nil }
