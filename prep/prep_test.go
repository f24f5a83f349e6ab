// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prep

import (
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/kortschak/utter"
	"gopkg.in/check.v1"

	"github.com/biogo/svread/read"
	"github.com/biogo/svread/source"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const samText = `@HD	VN:1.6	SO:coordinate
@SQ	SN:chr1	LN:1000
@SQ	SN:hs37d5	LN:100
@RG	ID:s1	SM:a
@RG	ID:s2	SM:b
r1	99	chr1	100	60	10M	=	300	210	ACGTACGTAC	IIIIIIIIII	RG:Z:s1
d1	97	chr1	150	60	10M	hs37d5	10	0	ACGTACGTAC	IIIIIIIIII	RG:Z:s1
s1	2048	chr1	200	60	10M	*	0	0	ACGTACGTAC	IIIIIIIIII	SA:Z:chr1,200,+,10M,60,0;	RG:Z:s1
r1	147	chr1	300	60	10M	=	100	-210	ACGTACGTAC	IIIIIIIIII	RG:Z:s1
g1	0	chr1	400	60	20M	*	0	0	ACGTACGTACGTACGTGGGG	IIIIIIIIIIIIIIIIIIII	RG:Z:s1
b1	0	chr1	495	60	10M	*	0	0	ACGTACGTAC	IIIIIIIIII	RG:Z:s1
r4	99	chr1	600	60	10M	=	700	110	ACGTACGTAC	IIIIIIIIII	RG:Z:s2
r4	147	chr1	700	60	10M	=	600	-110	ACGTACGTAC	IIIIIIIIII	RG:Z:s1
x1	0	hs37d5	10	60	10M	*	0	0	ACGTACGTAC	IIIIIIIIII	RG:Z:s1
`

func newSource(c *check.C) *source.SAM {
	src, err := source.ReadSAM(strings.NewReader(samText))
	c.Assert(err, check.Equals, nil)
	return src
}

func readNames(reads []*read.Record) []string {
	var n []string
	for _, r := range reads {
		n = append(n, r.Name())
	}
	return n
}

func (s *S) TestProcess(c *check.C) {
	src := newSource(c)
	p := NewProcessor()

	part, err := p.Process(src, source.Region{Chrom: "chr1", Start: 1, End: 500})
	c.Assert(err, check.Equals, nil)
	c.Check(part.Stats, check.Equals, ReadStats{
		TotalReads:               6,
		PolyGTrimmed:             1,
		DecoySequences:           1,
		IdenticalSupplementaries: 1,
	}, check.Commentf("%s", utter.Sdump(part.Stats)))
	c.Check(readNames(part.Reads), check.DeepEquals, []string{"r1", "r1", "g1", "b1"})

	first, second := part.Reads[0], part.Reads[1]
	c.Check(first.Mate(), check.Equals, second)
	c.Check(second.Mate(), check.Equals, first)
	c.Check(part.Reads[2].Len(), check.Equals, 16)
	c.Check(part.Reads[2].Cigar().String(), check.Equals, "16M")
	c.Check(part.Reads[3].HasMate(), check.Equals, false)

	// b1 overlaps the second region but is owned by the first.
	part, err = p.Process(src, source.Region{Chrom: "chr1", Start: 501, End: 1000})
	c.Assert(err, check.Equals, nil)
	c.Check(part.Stats, check.Equals, ReadStats{TotalReads: 2})
	c.Check(readNames(part.Reads), check.DeepEquals, []string{"r4", "r4"})
	c.Check(part.Reads[0].SampleIndex(), check.Equals, 1)
	c.Check(part.Reads[1].SampleIndex(), check.Equals, 0)
	for _, r := range part.Reads {
		c.Check(r.HasMate(), check.Equals, false, check.Commentf("different samples must not be linked"))
	}

	_, err = p.Process(src, source.Region{Chrom: "chr1", Start: 1})
	c.Check(err, check.Equals, nil)
}

func (s *S) TestIsDecoy(c *check.C) {
	p := NewProcessor()
	for _, test := range []struct {
		chrom string
		want  bool
	}{
		{chrom: "hs37d5", want: true},
		{chrom: "chrUn_KN707606v1_decoy", want: true},
		{chrom: "chr1", want: false},
		{chrom: "", want: false},
	} {
		c.Check(p.IsDecoy(test.chrom), check.Equals, test.want, check.Commentf("%q", test.chrom))
	}
}

func (s *S) TestRun(c *check.C) {
	src := newSource(c)
	regions := source.Partition(src.Header(), 500)
	c.Assert(regions, check.HasLen, 3)

	var (
		mu    sync.Mutex
		names []string
	)
	stats, err := Run(src, regions, NewProcessor(), 2, func(p *Partition) error {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, readNames(p.Reads)...)
		return nil
	})
	c.Assert(err, check.Equals, nil)
	c.Check(stats, check.Equals, ReadStats{
		TotalReads:               8,
		PolyGTrimmed:             1,
		DecoySequences:           1,
		IdenticalSupplementaries: 1,
	})
	sort.Strings(names)
	c.Check(names, check.DeepEquals, []string{"b1", "g1", "r1", "r1", "r4", "r4"})
}

func (s *S) TestMerge(c *check.C) {
	a := ReadStats{TotalReads: 10, PolyGTrimmed: 1, LowQualTrimmed: 2}
	b := ReadStats{TotalReads: 5, IndelSoftClipConverted: 3, DecoySequences: 1}
	d := ReadStats{TotalReads: 7, IdenticalSupplementaries: 4, LowQualTrimmed: 1}

	ab := a
	ab.Merge(b)
	ba := b
	ba.Merge(a)
	c.Check(ab, check.Equals, ba)

	abd := ab
	abd.Merge(d)
	bd := b
	bd.Merge(d)
	a_bd := a
	a_bd.Merge(bd)
	c.Check(abd, check.Equals, a_bd)
	c.Check(abd, check.Equals, ReadStats{
		TotalReads:               22,
		PolyGTrimmed:             1,
		LowQualTrimmed:           3,
		IndelSoftClipConverted:   3,
		DecoySequences:           1,
		IdenticalSupplementaries: 4,
	})

	var zero ReadStats
	zero.Merge(a)
	c.Check(zero, check.Equals, a)
}
