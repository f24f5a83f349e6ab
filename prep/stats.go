// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prep

import "fmt"

// ReadStats holds read processing counts. ReadStats values from
// independent partitions may be combined with Merge in any order.
type ReadStats struct {
	TotalReads               int64 `json:"total_reads"`
	PolyGTrimmed             int64 `json:"poly_g_trimmed"`
	LowQualTrimmed           int64 `json:"low_qual_trimmed"`
	IndelSoftClipConverted   int64 `json:"indel_soft_clip_converted"`
	DecoySequences           int64 `json:"decoy_sequences"`
	IdenticalSupplementaries int64 `json:"identical_supplementaries"`
}

// Merge adds the counts in o to s.
func (s *ReadStats) Merge(o ReadStats) {
	s.TotalReads += o.TotalReads
	s.PolyGTrimmed += o.PolyGTrimmed
	s.LowQualTrimmed += o.LowQualTrimmed
	s.IndelSoftClipConverted += o.IndelSoftClipConverted
	s.DecoySequences += o.DecoySequences
	s.IdenticalSupplementaries += o.IdenticalSupplementaries
}

func (s ReadStats) String() string {
	return fmt.Sprintf("reads=%d polyG=%d lowQual=%d indelSoftClip=%d decoy=%d identicalSupp=%d",
		s.TotalReads,
		s.PolyGTrimmed,
		s.LowQualTrimmed,
		s.IndelSoftClipConverted,
		s.DecoySequences,
		s.IdenticalSupplementaries,
	)
}
