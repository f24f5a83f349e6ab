// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package adjust implements normalising adjustments to aligned reads
// prior to breakpoint evidence collection.
//
// Each adjustment is a function of a read.Record that either modifies the
// record and reports true, or leaves the record unchanged and reports
// false. Invalid records are never adjusted.
package adjust

import "github.com/biogo/svread/read"

// Params holds the thresholds used by the read adjustments.
type Params struct {
	// PolyGThreshold is the shortest 3' G (or C on the
	// reverse strand) run that is trimmed.
	PolyGThreshold int `toml:"poly_g_threshold"`

	// LowQualThreshold is the base quality below which a
	// base is considered low quality.
	LowQualThreshold byte `toml:"low_qual_threshold"`

	// LowQualTrimFraction is the fraction of low quality bases
	// required for a soft clip prefix to be trimmed.
	LowQualTrimFraction float64 `toml:"low_qual_trim_fraction"`

	// LineTestLength is the number of inner soft clip bases
	// tested for a LINE poly-A/T motif, and LineMinCount the
	// number of those that must be the same A or T base.
	LineTestLength int `toml:"line_test_length"`
	LineMinCount   int `toml:"line_min_count"`

	// MinIndelLength and MaxIndelLength bound the length of an
	// edge indel that is treated as an implied soft clip.
	MinIndelLength int `toml:"min_indel_length"`
	MaxIndelLength int `toml:"max_indel_length"`
}

// DefaultParams are the default adjustment thresholds.
var DefaultParams = Params{
	PolyGThreshold:      4,
	LowQualThreshold:    26,
	LowQualTrimFraction: 0.35,
	LineTestLength:      18,
	LineMinCount:        16,
	MinIndelLength:      3,
	MaxIndelLength:      31,
}

// Result reports which adjustments modified a read.
type Result struct {
	PolyGTrimmed   bool
	LowQualTrimmed bool
	IndelSoftClip  bool
}

// Apply applies all adjustments to r: poly-G trimming, low quality soft
// clip trimming, low quality edge trimming and finally edge indel
// conversion. Indel conversion is applied last since trimming discards
// indel implied bounds.
func (p Params) Apply(r *read.Record) Result {
	var res Result
	if !r.Valid() {
		return res
	}
	res.PolyGTrimmed = TrimPolyG(r, p.PolyGThreshold)
	lq := p.TrimLowQualSoftClip(r)
	res.LowQualTrimmed = p.TrimLowQualBases(r) || lq
	res.IndelSoftClip = ConvertEdgeIndelsToSoftClip(r, p.MinIndelLength, p.MaxIndelLength)
	return res
}

func (p Params) isLowQual(q byte) bool { return q < p.LowQualThreshold }
