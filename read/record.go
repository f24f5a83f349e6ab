// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package read provides the aligned read representation used for
// breakpoint evidence collection.
//
// A Record holds the immutable attributes of an alignment as supplied by
// the alignment source together with a working copy of the CIGAR, bases and
// base qualities that may be shortened by trimming. Alignment boundaries are
// always derived from the working start position and CIGAR, so trimming
// cannot leave bases, CIGAR and boundaries out of step.
package read

import (
	"fmt"

	"github.com/biogo/hts/sam"

	"github.com/biogo/svread/cigar"
)

// Alignment holds the raw attributes of an aligned read.
type Alignment struct {
	Name  string
	Chrom string

	// Pos is the 1-based leftmost aligned reference position.
	Pos   int
	Cigar cigar.Cigar

	// Seq holds the upper case read bases and Qual the
	// Phred scaled base qualities.
	Seq  []byte
	Qual []byte

	Flags sam.Flags
	MapQ  byte

	MateChrom string
	MatePos   int

	// SampleIndex identifies the read group or sample the
	// read was obtained from.
	SampleIndex int

	// SA is the supplementary alignment tag value. It is empty
	// if the read has no supplementary alignment.
	SA string

	// NM is the edit distance tag value. It is only valid if
	// HasNM is true.
	NM    int
	HasNM bool
}

// Record is an aligned read.
type Record struct {
	orig Alignment

	pos     int
	cigar   cigar.Cigar
	bases   []byte
	quals   []byte
	bounds  cigar.Bounds
	trimmed int

	implied implied

	mate *Record

	indel      *IndelCoords
	indelDone  bool
	supp       *SupplementaryAlignment
	suppDone   bool
	events     Events
	eventsDone bool
}

// implied holds the indel implied alignment bounds of a record.
type implied struct {
	left, right bool

	alignmentStart, unclippedStart int
	alignmentEnd, unclippedEnd     int
}

// New returns a Record for the given alignment. The bases and qualities
// of a are not copied and must not be mutated by the caller.
func New(a Alignment) *Record {
	r := &Record{
		orig:  a,
		pos:   a.Pos,
		cigar: a.Cigar,
		bases: a.Seq,
		quals: a.Qual,
	}
	r.bounds = cigar.NewBounds(r.pos, r.cigar)
	return r
}

// Name returns the read name.
func (r *Record) Name() string { return r.orig.Name }

// Chrom returns the name of the reference sequence the read is aligned to.
func (r *Record) Chrom() string { return r.orig.Chrom }

// Flags returns the SAM flags of the read.
func (r *Record) Flags() sam.Flags { return r.orig.Flags }

// MapQ returns the mapping quality of the read.
func (r *Record) MapQ() byte { return r.orig.MapQ }

// SampleIndex returns the sample index of the read.
func (r *Record) SampleIndex() int { return r.orig.SampleIndex }

// MateChrom returns the reference name of the read's mate.
func (r *Record) MateChrom() string { return r.orig.MateChrom }

// MatePos returns the 1-based position of the read's mate.
func (r *Record) MatePos() int { return r.orig.MatePos }

// Original returns the alignment attributes the record was created from.
func (r *Record) Original() Alignment { return r.orig }

// Cigar returns the current, possibly trimmed, CIGAR of the read.
func (r *Record) Cigar() cigar.Cigar { return r.cigar }

// Bases returns the current, possibly trimmed, read bases.
func (r *Record) Bases() []byte { return r.bases }

// Quals returns the current, possibly trimmed, base qualities.
func (r *Record) Quals() []byte { return r.quals }

// Len returns the number of read bases.
func (r *Record) Len() int { return len(r.bases) }

// Bounds returns the alignment boundaries of the read.
func (r *Record) Bounds() cigar.Bounds { return r.bounds }

// AlignmentStart returns the first aligned reference position.
func (r *Record) AlignmentStart() int { return r.bounds.AlignmentStart }

// AlignmentEnd returns the last aligned reference position.
func (r *Record) AlignmentEnd() int { return r.bounds.AlignmentEnd }

// UnclippedStart returns the alignment start extended by the left soft clip.
func (r *Record) UnclippedStart() int { return r.bounds.UnclippedStart }

// UnclippedEnd returns the alignment end extended by the right soft clip.
func (r *Record) UnclippedEnd() int { return r.bounds.UnclippedEnd }

// TrimCount returns the number of bases removed by trimming.
func (r *Record) TrimCount() int { return r.trimmed }

// LeftClip returns the length of the left soft clip.
func (r *Record) LeftClip() int { return r.cigar.LeftClip() }

// RightClip returns the length of the right soft clip.
func (r *Record) RightClip() int { return r.cigar.RightClip() }

// IsLeftClipped returns whether the read has a left soft clip,
// including a clip implied by an edge indel.
func (r *Record) IsLeftClipped() bool { return r.LeftClip() > 0 || r.implied.left }

// IsRightClipped returns whether the read has a right soft clip,
// including a clip implied by an edge indel.
func (r *Record) IsRightClipped() bool { return r.RightClip() > 0 || r.implied.right }

// Valid returns whether the read has a CIGAR consistent with its bases.
// Invalid reads have degenerate boundaries and are not adjusted.
func (r *Record) Valid() bool {
	return len(r.cigar) != 0 && r.cigar.IsValid(len(r.bases)) && (r.quals == nil || len(r.quals) == len(r.bases))
}

// IsUnmapped returns whether the read is flagged as unmapped.
func (r *Record) IsUnmapped() bool { return r.orig.Flags&sam.Unmapped != 0 }

// IsPaired returns whether the read is flagged as one of a pair.
func (r *Record) IsPaired() bool { return r.orig.Flags&sam.Paired != 0 }

// IsMateUnmapped returns whether the read's mate is flagged as unmapped.
func (r *Record) IsMateUnmapped() bool { return r.orig.Flags&sam.MateUnmapped != 0 }

// IsFirstOfPair returns whether the read is the first read of its pair.
func (r *Record) IsFirstOfPair() bool { return r.orig.Flags&sam.Read1 != 0 }

// IsSupplementary returns whether the record is a supplementary alignment.
func (r *Record) IsSupplementary() bool { return r.orig.Flags&sam.Supplementary != 0 }

// IsSecondary returns whether the record is a secondary alignment.
func (r *Record) IsSecondary() bool { return r.orig.Flags&sam.Secondary != 0 }

// IsDuplicate returns whether the read is flagged as a PCR or optical duplicate.
func (r *Record) IsDuplicate() bool { return r.orig.Flags&sam.Duplicate != 0 }

// IsNegativeStrand returns whether the read is aligned to the reverse strand.
func (r *Record) IsNegativeStrand() bool { return r.orig.Flags&sam.Reverse != 0 }

// Strand returns 1 for forward strand reads and -1 for reverse strand reads.
func (r *Record) Strand() int8 {
	if r.IsNegativeStrand() {
		return -1
	}
	return 1
}

// Mate returns the read's mate if it has been linked, otherwise nil.
func (r *Record) Mate() *Record { return r.mate }

// SetMate links the read to its mate. The link is not an ownership
// relation and the mate is not linked back.
func (r *Record) SetMate(m *Record) { r.mate = m }

// HasMate returns whether the read's mate has been linked.
func (r *Record) HasMate() bool { return r.mate != nil }

// MinUnclippedStart returns the lower of the unclipped start and
// the indel implied unclipped start.
func (r *Record) MinUnclippedStart() int {
	if r.implied.left {
		return min(r.bounds.UnclippedStart, r.implied.unclippedStart)
	}
	return r.bounds.UnclippedStart
}

// MaxUnclippedEnd returns the higher of the unclipped end and
// the indel implied unclipped end.
func (r *Record) MaxUnclippedEnd() int {
	if r.implied.right {
		return max(r.bounds.UnclippedEnd, r.implied.unclippedEnd)
	}
	return r.bounds.UnclippedEnd
}

// ImpliedUnclippedStart returns the unclipped start implied by a left
// edge indel and whether one has been applied.
func (r *Record) ImpliedUnclippedStart() (int, bool) {
	return r.implied.unclippedStart, r.implied.left
}

// ImpliedAlignmentStart returns the alignment start implied by a left
// edge indel and whether one has been applied.
func (r *Record) ImpliedAlignmentStart() (int, bool) {
	return r.implied.alignmentStart, r.implied.left
}

// ImpliedUnclippedEnd returns the unclipped end implied by a right
// edge indel and whether one has been applied.
func (r *Record) ImpliedUnclippedEnd() (int, bool) {
	return r.implied.unclippedEnd, r.implied.right
}

// ImpliedAlignmentEnd returns the alignment end implied by a right
// edge indel and whether one has been applied.
func (r *Record) ImpliedAlignmentEnd() (int, bool) {
	return r.implied.alignmentEnd, r.implied.right
}

// HasIndelImpliedBounds returns whether either edge has indel implied bounds.
func (r *Record) HasIndelImpliedBounds() bool {
	return r.implied.left || r.implied.right
}

// String returns a string representation of the Record.
func (r *Record) String() string {
	strand := '+'
	if r.IsNegativeStrand() {
		strand = '-'
	}
	return fmt.Sprintf("%s %s:%d-%d %c %v (%d-%d) %v mq:%d",
		r.orig.Name,
		r.orig.Chrom,
		r.bounds.AlignmentStart,
		r.bounds.AlignmentEnd,
		strand,
		r.cigar,
		r.bounds.UnclippedStart,
		r.bounds.UnclippedEnd,
		r.orig.Flags,
		r.orig.MapQ,
	)
}
