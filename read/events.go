// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

// Events summarises the differences between a read and the reference.
type Events struct {
	// Known is false if the read had no edit distance tag,
	// in which case Mismatches is zero.
	Known bool

	Mismatches int
	IndelBases int
	Indels     int
}

// Total returns the number of mismatches and indels.
func (e Events) Total() int { return e.Mismatches + e.Indels }

// Events returns the event counts of the read derived from its NM tag
// and original CIGAR. The result is computed once.
func (r *Record) Events() Events {
	if r.eventsDone {
		return r.events
	}
	var e Events
	for _, co := range r.orig.Cigar {
		if co.Type().IsIndel() {
			e.Indels++
			e.IndelBases += co.Len()
		}
	}
	if r.orig.HasNM {
		e.Known = true
		e.Mismatches = max(r.orig.NM-e.IndelBases, 0)
	}
	r.events = e
	r.eventsDone = true
	return e
}
