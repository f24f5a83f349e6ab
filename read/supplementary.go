// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/svread/cigar"
)

// SupplementaryAlignment is an alternative alignment of a split read as
// described by an SA tag entry.
type SupplementaryAlignment struct {
	Chrom    string
	Position int
	Negative bool
	Cigar    cigar.Cigar
	MapQ     int
	NM       int
}

// Strand returns '+' or '-'.
func (sa SupplementaryAlignment) Strand() byte {
	if sa.Negative {
		return '-'
	}
	return '+'
}

func (sa SupplementaryAlignment) String() string {
	return fmt.Sprintf("%s,%d,%c,%v,%d,%d", sa.Chrom, sa.Position, sa.Strand(), sa.Cigar, sa.MapQ, sa.NM)
}

var errSAFormat = errors.New("read: malformed supplementary alignment")

// ParseSupplementary parses the first entry of an SA tag value of the form
// "chr,pos,strand,CIGAR,mapQ,NM;...".
func ParseSupplementary(tag string) (*SupplementaryAlignment, error) {
	entry := tag
	if i := strings.IndexByte(tag, ';'); i >= 0 {
		entry = tag[:i]
	}
	f := strings.Split(entry, ",")
	if len(f) != 6 {
		return nil, errSAFormat
	}
	var (
		sa  SupplementaryAlignment
		err error
	)
	sa.Chrom = f[0]
	if sa.Chrom == "" {
		return nil, errSAFormat
	}
	sa.Position, err = strconv.Atoi(f[1])
	if err != nil {
		return nil, fmt.Errorf("read: failed to parse supplementary position: %v", err)
	}
	switch f[2] {
	case "+":
	case "-":
		sa.Negative = true
	default:
		return nil, errSAFormat
	}
	sa.Cigar, err = cigar.Parse(f[3])
	if err != nil {
		return nil, err
	}
	sa.MapQ, err = strconv.Atoi(f[4])
	if err != nil {
		return nil, fmt.Errorf("read: failed to parse supplementary map quality: %v", err)
	}
	sa.NM, err = strconv.Atoi(f[5])
	if err != nil {
		return nil, fmt.Errorf("read: failed to parse supplementary edit distance: %v", err)
	}
	return &sa, nil
}

// Supplementary returns the first supplementary alignment described by the
// read's SA tag, or nil if the read has none or the tag is malformed.
// The result is computed once.
func (r *Record) Supplementary() *SupplementaryAlignment {
	if !r.suppDone {
		if r.orig.SA != "" {
			r.supp, _ = ParseSupplementary(r.orig.SA)
		}
		r.suppDone = true
	}
	return r.supp
}

// HasSupplementary returns whether the read has a valid supplementary
// alignment.
func (r *Record) HasSupplementary() bool { return r.Supplementary() != nil }

// HasIdenticalSupplementary returns whether the read is a supplementary
// alignment whose SA entry describes the read's own alignment.
func (r *Record) HasIdenticalSupplementary() bool {
	if !r.IsSupplementary() {
		return false
	}
	sa := r.Supplementary()
	if sa == nil {
		return false
	}
	return sa.Chrom == r.orig.Chrom &&
		sa.Position == r.orig.Pos &&
		sa.Negative == r.IsNegativeStrand() &&
		sa.Cigar.String() == r.orig.Cigar.String()
}
