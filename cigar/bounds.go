// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cigar

import "fmt"

// Bounds holds the 1-based inclusive reference coordinates of an alignment.
// UnclippedStart and UnclippedEnd extend the aligned interval by the
// soft clipped bases at each end.
type Bounds struct {
	AlignmentStart int
	AlignmentEnd   int
	UnclippedStart int
	UnclippedEnd   int
}

// NewBounds returns the alignment bounds of an alignment starting at the
// 1-based position start and described by c. An alignment without any
// reference consuming operations is degenerate and all four coordinates
// are equal to start.
func NewBounds(start int, c Cigar) Bounds {
	b := Bounds{
		AlignmentStart: start,
		AlignmentEnd:   start,
		UnclippedStart: start,
		UnclippedEnd:   start,
	}
	pos := start
	var consumed bool
	for _, co := range c {
		if co.Type().ConsumesReference() {
			pos += co.Len()
			consumed = true
		}
	}
	if !consumed {
		return b
	}
	b.AlignmentEnd = pos - 1
	b.UnclippedStart = start - c.LeftClip()
	b.UnclippedEnd = b.AlignmentEnd + c.RightClip()
	return b
}

// Contains returns whether the 1-based position pos lies within the
// aligned interval.
func (b Bounds) Contains(pos int) bool {
	return b.AlignmentStart <= pos && pos <= b.AlignmentEnd
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d-%d (%d-%d)", b.AlignmentStart, b.AlignmentEnd, b.UnclippedStart, b.UnclippedEnd)
}
