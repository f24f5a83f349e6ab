// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coords maps between reference positions and read base offsets.
package coords

import (
	"github.com/biogo/svread/cigar"
	"github.com/biogo/svread/read"
	"github.com/biogo/svread/sv"
)

// ReadIndex returns the index into the bases of r corresponding to the
// 1-based reference position pos. Positions in the soft clipped regions
// are mapped as though the clipped bases were aligned. If extrapolate is
// true, positions beyond the unclipped bounds are mapped outside the range
// of the read bases, otherwise ok is false for them. Indel implied bounds
// are used for a side only if orient is unspecified or selects that side:
// Reverse for the left side and Forward for the right. A position within a
// deletion or skip maps to the base preceding it.
//
// A false ok is the expected result for positions the read does not cover
// and callers should treat it as no evidence.
func ReadIndex(r *read.Record, pos int, extrapolate bool, orient sv.Orientation) (index int, ok bool) {
	if !r.Valid() {
		return 0, false
	}
	if orient != sv.Forward {
		if start, implied := r.ImpliedAlignmentStart(); implied && pos <= start {
			ucs, _ := r.ImpliedUnclippedStart()
			if pos < ucs {
				return 0, false
			}
			return pos - ucs, true
		}
	}
	if orient != sv.Reverse {
		if end, implied := r.ImpliedAlignmentEnd(); implied && pos >= end {
			uce, _ := r.ImpliedUnclippedEnd()
			if pos > uce {
				return 0, false
			}
			return r.Len() - 1 - (uce - pos), true
		}
	}

	b := r.Bounds()
	if pos <= b.AlignmentStart {
		diff := b.AlignmentStart - pos
		clip := b.AlignmentStart - b.UnclippedStart
		if diff > clip && !extrapolate {
			return 0, false
		}
		return clip - diff, true
	}
	if pos >= b.AlignmentEnd {
		diff := pos - b.AlignmentEnd
		clip := b.UnclippedEnd - b.AlignmentEnd
		if diff > clip && !extrapolate {
			return 0, false
		}
		return r.Len() - 1 - clip + diff, true
	}
	return alignedReadIndex(r.AlignmentStart(), r.Cigar(), pos)
}

// AlignedReadIndex returns the read index aligned to pos by the CIGAR of r
// without reference to soft clips or indel implied bounds.
func AlignedReadIndex(r *read.Record, pos int) (index int, ok bool) {
	if !r.Valid() {
		return 0, false
	}
	return alignedReadIndex(r.AlignmentStart(), r.Cigar(), pos)
}

// JunctionReadIndex returns the index into the bases of r corresponding to
// the position of j. For an indel junction on a read with an embedded indel
// the alignment itself is used. Otherwise the mapping is made as for
// ReadIndex without extrapolation and restricted to the junction's
// orientation.
func JunctionReadIndex(r *read.Record, j sv.Junction) (index int, ok bool) {
	if j.Indel && r.Indel() != nil {
		return AlignedReadIndex(r, j.Position)
	}
	return ReadIndex(r, j.Position, false, j.Orient)
}

// alignedReadIndex walks the alignment c starting at the 1-based reference
// position start and returns the read index aligned to pos.
func alignedReadIndex(start int, c cigar.Cigar, pos int) (int, bool) {
	ref := start
	var idx int
	for _, co := range c {
		t := co.Type()
		l := co.Len()
		switch {
		case t.ConsumesReference() && t.ConsumesRead():
			if pos < ref+l {
				if pos < ref {
					return 0, false
				}
				return idx + pos - ref, true
			}
			ref += l
			idx += l
		case t.ConsumesReference():
			if ref <= pos && pos < ref+l {
				return idx - 1, idx > 0
			}
			ref += l
		case t.ConsumesRead():
			idx += l
		}
	}
	return 0, false
}
