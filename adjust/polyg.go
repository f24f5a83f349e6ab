// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adjust

import "github.com/biogo/svread/read"

// TrimPolyG trims a run of at least threshold G bases from the 3' end of
// r. For reverse strand reads the run is of C bases at the start of the
// read bases. It returns whether the read was trimmed.
func TrimPolyG(r *read.Record, threshold int) bool {
	if !r.Valid() || threshold <= 0 {
		return false
	}
	bases := r.Bases()
	fromStart := r.IsNegativeStrand()
	var n int
	if fromStart {
		for n < len(bases) && bases[n] == 'C' {
			n++
		}
	} else {
		for n < len(bases) && bases[len(bases)-1-n] == 'G' {
			n++
		}
	}
	if n < threshold {
		return false
	}
	return r.Trim(n, fromStart) > 0
}
