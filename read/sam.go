// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package read

import (
	"bytes"

	"github.com/biogo/hts/sam"

	"github.com/biogo/svread/cigar"
)

var (
	saTag = sam.NewTag("SA")
	nmTag = sam.NewTag("NM")
)

// FromSAM returns a Record for the SAM record sr. Positions are converted
// to 1-based coordinates. A CIGAR that cannot be represented results in a
// record with no CIGAR, which is reported as not Valid.
func FromSAM(sr *sam.Record, sampleIndex int) *Record {
	a := Alignment{
		Name:        sr.Name,
		Pos:         sr.Pos + 1,
		Seq:         bytes.ToUpper(sr.Seq.Expand()),
		Flags:       sr.Flags,
		MapQ:        sr.MapQ,
		SampleIndex: sampleIndex,
	}
	if sr.Ref != nil {
		a.Chrom = sr.Ref.Name()
	}
	if sr.MateRef != nil {
		a.MateChrom = sr.MateRef.Name()
		a.MatePos = sr.MatePos + 1
	}
	if len(sr.Qual) != 0 {
		a.Qual = sr.Qual
	}
	if c, err := cigar.FromSAM(sr.Cigar); err == nil {
		a.Cigar = c
	}
	if aux := sr.AuxFields.Get(saTag); aux != nil {
		if v, ok := aux.Value().(string); ok {
			a.SA = v
		}
	}
	if aux := sr.AuxFields.Get(nmTag); aux != nil {
		a.NM, a.HasNM = auxInt(aux)
	}
	return New(a)
}

func auxInt(aux sam.Aux) (int, bool) {
	switch v := aux.Value().(type) {
	case int8:
		return int(v), true
	case uint8:
		return int(v), true
	case int16:
		return int(v), true
	case uint16:
		return int(v), true
	case int32:
		return int(v), true
	case uint32:
		return int(v), true
	default:
		return 0, false
	}
}
