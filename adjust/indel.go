// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adjust

import (
	"github.com/biogo/svread/cigar"
	"github.com/biogo/svread/read"
)

// ConvertEdgeIndelsToSoftClip treats an insertion or deletion of between
// minLength and maxLength bases that is adjacent to the first or last
// alignment operation of r as though the bases outside the indel were soft
// clipped. The implied bounds are recorded with ApplyIndelImpliedBounds;
// the CIGAR of r is not changed. It returns whether either edge was converted.
func ConvertEdgeIndelsToSoftClip(r *read.Record, minLength, maxLength int) bool {
	if !r.Valid() {
		return false
	}
	c := r.Cigar()
	if len(c) < 3 {
		return false
	}
	left := edgeSoftClip(c[0], c[1], c[2], minLength, maxLength)
	last := len(c) - 1
	right := edgeSoftClip(c[last], c[last-1], c[last-2], minLength, maxLength)
	if left == 0 && right == 0 {
		return false
	}
	r.ApplyIndelImpliedBounds(left, right)
	return true
}

// edgeSoftClip returns the implied soft clip length for the edge
// operation pattern edge, indel, inner, or zero if the pattern does
// not qualify.
func edgeSoftClip(edge, indel, inner cigar.Op, minLength, maxLength int) int {
	if !edge.Type().IsAlignment() || !inner.Type().IsAlignment() {
		return 0
	}
	if l := indel.Len(); l < minLength || maxLength < l {
		return 0
	}
	switch indel.Type() {
	case cigar.Insertion:
		return edge.Len() + indel.Len()
	case cigar.Deletion:
		return edge.Len()
	default:
		return 0
	}
}
