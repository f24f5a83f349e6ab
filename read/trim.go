// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

import "github.com/biogo/svread/cigar"

// Trim removes n bases from the start of the read if fromStart is true,
// or from the end otherwise. At least one base is always retained.
// The CIGAR is shortened to match, splitting a partially consumed
// operation, and the alignment boundaries are recomputed. Indel implied
// bounds are discarded since they no longer describe the trimmed CIGAR.
// Trim returns the number of bases removed.
func (r *Record) Trim(n int, fromStart bool) int {
	if !r.Valid() {
		return 0
	}
	n = min(n, len(r.bases)-1)
	if n <= 0 {
		return 0
	}

	c, refRemoved := trimOps(r.cigar, n, fromStart)
	if fromStart {
		r.pos += refRemoved
		r.bases = r.bases[n:]
		if r.quals != nil {
			r.quals = r.quals[n:]
		}
	} else {
		r.bases = r.bases[:len(r.bases)-n]
		if r.quals != nil {
			r.quals = r.quals[:len(r.quals)-n]
		}
	}
	r.cigar = c
	r.bounds = cigar.NewBounds(r.pos, r.cigar)
	r.implied = implied{}
	r.trimmed += n
	return n
}

// trimOps removes n read bases from one end of c, returning the new CIGAR
// and the number of reference bases removed. Hard clip and padding
// operations at the trimmed end are retained. An insertion exposed by
// the trim becomes part of the soft clip at that end.
func trimOps(c cigar.Cigar, n int, fromStart bool) (cigar.Cigar, int) {
	ops := c.Clone()
	if !fromStart {
		reverse(ops)
	}

	var (
		kept       cigar.Cigar
		refRemoved int
		i          int
	)
	for ; i < len(ops) && n > 0; i++ {
		t := ops[i].Type()
		l := ops[i].Len()
		if t == cigar.HardClipped || t == cigar.Padded {
			kept = append(kept, ops[i])
			continue
		}
		if !t.ConsumesRead() {
			refRemoved += l
			continue
		}
		take := min(n, l)
		n -= take
		if t.ConsumesReference() {
			refRemoved += take
		}
		if take < l {
			ops[i] = cigar.NewOp(t, l-take)
			break
		}
	}
	// The new edge must be an alignment operation. Read only operations
	// left there are merged into a soft clip and reference only
	// operations are removed.
	var clip int
	for ; i < len(ops); i++ {
		t := ops[i].Type()
		if t.IsAlignment() || t == cigar.HardClipped || t == cigar.Padded {
			break
		}
		if t.ConsumesRead() {
			clip += ops[i].Len()
		} else {
			refRemoved += ops[i].Len()
		}
	}
	out := kept
	if clip != 0 {
		out = append(out, cigar.NewOp(cigar.SoftClipped, clip))
	}
	out = append(out, ops[i:]...)
	if !fromStart {
		reverse(out)
	}
	return out, refRemoved
}

func reverse(c cigar.Cigar) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// ApplyIndelImpliedBounds records the boundaries the read would have if
// the indel adjacent to its first or last alignment operation were
// instead a soft clip of leftSoftClip or rightSoftClip bases. A zero
// length leaves that side unchanged. The CIGAR and bases are not altered.
func (r *Record) ApplyIndelImpliedBounds(leftSoftClip, rightSoftClip int) {
	c := r.cigar
	if len(c) < 3 {
		return
	}
	if leftSoftClip > 0 {
		start := r.bounds.AlignmentStart + c[0].Len()
		if c[1].Type() == cigar.Deletion {
			start += c[1].Len()
		}
		r.implied.left = true
		r.implied.alignmentStart = start
		r.implied.unclippedStart = start - leftSoftClip
	}
	if rightSoftClip > 0 {
		last := len(c) - 1
		end := r.bounds.AlignmentEnd - c[last].Len()
		if c[last-1].Type() == cigar.Deletion {
			end -= c[last-1].Len()
		}
		r.implied.right = true
		r.implied.alignmentEnd = end
		r.implied.unclippedEnd = end + rightSoftClip
	}
}
