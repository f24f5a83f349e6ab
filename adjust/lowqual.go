// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adjust

import "github.com/biogo/svread/read"

// TrimLowQualSoftClip trims low quality bases from the 3' soft clip of r.
// Scanning the clip from its outer edge inwards, the clip is trimmed up to
// the last base at which the fraction of low quality bases seen so far is
// at least p.LowQualTrimFraction. Bases belonging to a LINE poly-A/T motif
// adjacent to the alignment are excluded from the scan. It returns whether
// the read was trimmed.
func (p Params) TrimLowQualSoftClip(r *read.Record) bool {
	if !r.Valid() || r.Quals() == nil {
		return false
	}
	fromStart := r.IsNegativeStrand()
	clip := r.RightClip()
	if fromStart {
		clip = r.LeftClip()
	}
	if clip == 0 {
		return false
	}

	bases := r.Bases()
	quals := r.Quals()
	outer, step := len(bases)-1, -1
	if fromStart {
		outer, step = 0, 1
	}
	clip -= p.lineLength(bases, outer, step, clip)

	last := -1
	var low int
	for i := 0; i < clip; i++ {
		if p.isLowQual(quals[outer+i*step]) {
			low++
		}
		if float64(low) >= p.LowQualTrimFraction*float64(i+1) {
			last = i
		}
	}
	if last < 0 {
		return false
	}
	return r.Trim(last+1, fromStart) > 0
}

// lineLength returns the number of soft clip bases, counted outwards from
// the innermost clip base, that belong to a LINE poly-A or poly-T motif.
// The clip occupies clip bases from outer moving by step.
func (p Params) lineLength(bases []byte, outer, step, clip int) int {
	if p.LineTestLength <= 0 || clip < p.LineMinCount {
		return 0
	}
	inner := outer + (clip-1)*step
	test := min(p.LineTestLength, clip)
	var a, t int
	for j := 0; j < test; j++ {
		switch bases[inner-j*step] {
		case 'A':
			a++
		case 'T':
			t++
		}
	}
	var motif byte
	switch {
	case a >= p.LineMinCount:
		motif = 'A'
	case t >= p.LineMinCount:
		motif = 'T'
	default:
		return 0
	}

	// Extend past the test window while the motif base continues.
	var n int
	for j := 0; j < clip; j++ {
		if bases[inner-j*step] == motif {
			n = j + 1
		} else if j >= test {
			break
		}
	}
	return n
}

// TrimLowQualBases trims consecutive low quality bases from the 3' end of
// r, stopping at the first base of acceptable quality or at the middle of
// the read. It returns whether the read was trimmed.
func (p Params) TrimLowQualBases(r *read.Record) bool {
	if !r.Valid() || r.Quals() == nil {
		return false
	}
	fromStart := r.IsNegativeStrand()
	quals := r.Quals()
	mid := len(quals) / 2
	var n int
	for n < mid {
		i := len(quals) - 1 - n
		if fromStart {
			i = n
		}
		if !p.isLowQual(quals[i]) {
			break
		}
		n++
	}
	if n == 0 {
		return false
	}
	return r.Trim(n, fromStart) > 0
}
