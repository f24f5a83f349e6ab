// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

import (
	"fmt"

	"github.com/biogo/svread/cigar"
)

// MinIndelLength is the shortest insertion or deletion reported by
// Record.Indel as an embedded indel.
const MinIndelLength = 32

// IndelCoords describes an insertion or deletion within an alignment.
type IndelCoords struct {
	// Position is the last aligned reference position
	// before the indel.
	Position    int
	Length      int
	IsInsertion bool
}

// Start returns the last reference position before the indel.
func (ic IndelCoords) Start() int { return ic.Position }

// End returns the first reference position after the indel.
func (ic IndelCoords) End() int {
	if ic.IsInsertion {
		return ic.Position + 1
	}
	return ic.Position + ic.Length + 1
}

func (ic IndelCoords) String() string {
	kind := "DEL"
	if ic.IsInsertion {
		kind = "INS"
	}
	return fmt.Sprintf("%s:%d-%d(%d)", kind, ic.Start(), ic.End(), ic.Length)
}

// Indel returns the longest insertion or deletion in the original
// alignment with a length of at least MinIndelLength, or nil if there
// is none. The result is computed once.
func (r *Record) Indel() *IndelCoords {
	if !r.indelDone {
		r.indel = FindIndel(r.orig.Pos, r.orig.Cigar, MinIndelLength)
		r.indelDone = true
	}
	return r.indel
}

// FindIndel returns the longest insertion or deletion of at least minLength
// bases in an alignment starting at the 1-based position pos described by c.
// The first of equally long indels is returned.
func FindIndel(pos int, c cigar.Cigar, minLength int) *IndelCoords {
	var best *IndelCoords
	for _, co := range c {
		t := co.Type()
		if t.IsIndel() && co.Len() >= minLength && (best == nil || co.Len() > best.Length) {
			best = &IndelCoords{
				Position:    pos - 1,
				Length:      co.Len(),
				IsInsertion: t == cigar.Insertion,
			}
		}
		if t.ConsumesReference() {
			pos += co.Len()
		}
	}
	return best
}
