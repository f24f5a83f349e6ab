// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package junction classifies aligned reads as evidence for candidate
// structural variant breakpoints.
//
// The orientation of a junction selects the end of a read that is
// examined: the right end for Forward junctions and the left end for
// Reverse junctions. All comparisons are made in reference coordinates.
package junction

import (
	"github.com/biogo/svread/read"
	"github.com/biogo/svread/refgenome"
	"github.com/biogo/svread/sv"
)

// Params holds the thresholds used for junction support classification.
type Params struct {
	// MaxMismatchOverlap is the furthest an unclipped alignment may
	// extend past a junction and still be counted as support when the
	// read has a mismatch.
	MaxMismatchOverlap int `toml:"max_mismatch_overlap"`

	// ClipTolerance is the largest distance between a soft clip
	// boundary and a junction for a clipped read to be considered
	// to cross the junction.
	ClipTolerance int `toml:"clip_tolerance"`

	// MinMismatchSpan and MaxMismatchSpan bound the length of the
	// aligned span past a junction that is compared with the reference,
	// and MinSpanMismatches is the number of mismatches required in it.
	MinMismatchSpan   int `toml:"min_mismatch_span"`
	MaxMismatchSpan   int `toml:"max_mismatch_span"`
	MinSpanMismatches int `toml:"min_span_mismatches"`
}

// DefaultParams are the default junction support thresholds.
var DefaultParams = Params{
	MaxMismatchOverlap: 2,
	ClipTolerance:      2,
	MinMismatchSpan:    2,
	MaxMismatchSpan:    16,
	MinSpanMismatches:  1,
}

// Kind is the kind of evidence a read provides for a junction.
type Kind int

const (
	None             Kind = iota // No support.
	ExactClip                    // Soft clipped exactly at the junction.
	CrossingMismatch             // Unclipped, just crossing the junction, with a mismatch.
	ClipCrossing                 // Clipped near, or mismatching past, the junction.
)

var kindNames = []string{"none", "exact", "crossing-mismatch", "clip-crossing"}

func (k Kind) String() string {
	if k < None || k > ClipCrossing {
		return "unknown"
	}
	return kindNames[k]
}

// Support is the result of classifying a read against a junction.
type Support struct {
	Kind Kind

	// ExtensionLength is the number of read bases
	// extending past the junction.
	ExtensionLength int
}

// Supports returns whether s represents junction support.
func (s Support) Supports() bool { return s.Kind != None }

// Classifier classifies reads against junctions.
type Classifier struct {
	Params

	// Ref is used to find mismatches past a junction. If Ref
	// is nil the mismatch based test never reports support.
	Ref refgenome.Genome
}

// Classify returns the strongest evidence r provides for j.
func (c *Classifier) Classify(r *read.Record, j sv.Junction) Support {
	if !r.Valid() || r.Chrom() != j.Chrom {
		return Support{}
	}
	var k Kind
	switch {
	case ExactSupport(r, j):
		k = ExactClip
	case c.CrossesWithMismatch(r, j):
		k = CrossingMismatch
	case c.SoftClipAndCrosses(r, j):
		k = ClipCrossing
	default:
		return Support{}
	}
	return Support{Kind: k, ExtensionLength: ExtensionLength(r, j)}
}

// ExactSupport returns whether r is soft clipped, or has an indel implied
// clip, on the side of j's orientation with the clip boundary at the
// junction position.
func ExactSupport(r *read.Record, j sv.Junction) bool {
	switch j.Orient {
	case sv.Forward:
		if r.RightClip() > 0 && r.AlignmentEnd() == j.Position {
			return true
		}
		end, ok := r.ImpliedAlignmentEnd()
		return ok && end == j.Position
	case sv.Reverse:
		if r.LeftClip() > 0 && r.AlignmentStart() == j.Position {
			return true
		}
		start, ok := r.ImpliedAlignmentStart()
		return ok && start == j.Position
	default:
		return false
	}
}

// CrossesWithMismatch returns whether r is not clipped on the side of j's
// orientation, its alignment extends past the junction by at most
// MaxMismatchOverlap bases and it has at least one mismatch. Such reads
// often carry a single non-reference base past the breakpoint that the
// aligner did not clip.
func (c *Classifier) CrossesWithMismatch(r *read.Record, j sv.Junction) bool {
	var overlap int
	switch j.Orient {
	case sv.Forward:
		if r.IsRightClipped() {
			return false
		}
		overlap = r.AlignmentEnd() - j.Position
	case sv.Reverse:
		if r.IsLeftClipped() {
			return false
		}
		overlap = j.Position - r.AlignmentStart()
	default:
		return false
	}
	if overlap < 1 || overlap > c.MaxMismatchOverlap {
		return false
	}
	return r.Events().Mismatches > 0
}

// SoftClipAndCrosses returns whether r extends past j on the side of its
// orientation. This is true if an indel implied clip extends past the
// junction, if a soft clip boundary is within ClipTolerance of the junction
// and the clipped bases extend past it, or if the aligned bases past the
// junction carry at least MinSpanMismatches differences from the reference.
func (c *Classifier) SoftClipAndCrosses(r *read.Record, j sv.Junction) bool {
	switch j.Orient {
	case sv.Forward:
		if end, ok := r.ImpliedUnclippedEnd(); ok && end > j.Position {
			return true
		}
		if r.RightClip() > 0 && abs(r.AlignmentEnd()-j.Position) <= c.ClipTolerance && r.UnclippedEnd() > j.Position {
			return true
		}
		if r.AlignmentEnd() <= j.Position {
			return false
		}
		return c.hasSpanMismatches(r, j.Position+1, r.AlignmentEnd())
	case sv.Reverse:
		if start, ok := r.ImpliedUnclippedStart(); ok && start < j.Position {
			return true
		}
		if r.LeftClip() > 0 && abs(r.AlignmentStart()-j.Position) <= c.ClipTolerance && r.UnclippedStart() < j.Position {
			return true
		}
		if r.AlignmentStart() >= j.Position {
			return false
		}
		return c.hasSpanMismatches(r, r.AlignmentStart(), j.Position-1)
	default:
		return false
	}
}

// hasSpanMismatches returns whether the aligned bases of r between the
// reference positions start and end differ from the reference at least
// MinSpanMismatches times. Deleted reference bases count as differences.
// Spans outside the configured length bounds and spans for which the
// reference is unavailable are not counted.
func (c *Classifier) hasSpanMismatches(r *read.Record, start, end int) bool {
	n := end - start + 1
	if n < c.MinMismatchSpan || n > c.MaxMismatchSpan || c.Ref == nil {
		return false
	}
	ref, err := c.Ref.Bases(r.Chrom(), start, end)
	if err != nil || len(ref) != n {
		return false
	}
	bases := r.Bases()
	var mismatches int
	pos := r.AlignmentStart()
	var idx int
	for _, co := range r.Cigar() {
		t := co.Type()
		l := co.Len()
		if t.ConsumesReference() {
			for k := max(pos, start); k < min(pos+l, end+1); k++ {
				if !t.ConsumesRead() {
					mismatches++
					continue
				}
				b := bases[idx+k-pos]
				rb := ref[k-start]
				if b != rb && b != 'N' && rb != 'N' {
					mismatches++
				}
			}
			pos += l
		}
		if t.ConsumesRead() {
			idx += l
		}
		if pos > end {
			break
		}
	}
	return mismatches >= c.MinSpanMismatches
}

// ExtensionLength returns the number of read bases extending past j on
// the side of its orientation, including indel implied clips. It is zero
// for reads that are not clipped on that side.
func ExtensionLength(r *read.Record, j sv.Junction) int {
	switch j.Orient {
	case sv.Forward:
		if !r.IsRightClipped() {
			return 0
		}
		return max(r.MaxUnclippedEnd()-j.Position, 0)
	case sv.Reverse:
		if !r.IsLeftClipped() {
			return 0
		}
		return max(j.Position-r.MinUnclippedStart(), 0)
	default:
		return 0
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
