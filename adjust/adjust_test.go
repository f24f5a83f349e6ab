// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adjust

import (
	"bytes"
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/kortschak/utter"
	"gopkg.in/check.v1"

	"github.com/biogo/svread/cigar"
	"github.com/biogo/svread/read"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// newRecord returns a record with the given bases, a uniform base quality
// of qual and the given CIGAR.
func newRecord(pos int, c, bases string, qual byte, flags sam.Flags) *read.Record {
	q := bytes.Repeat([]byte{qual}, len(bases))
	return read.New(read.Alignment{
		Name:  "read",
		Chrom: "chr1",
		Pos:   pos,
		Cigar: cigar.MustParse(c),
		Seq:   []byte(bases),
		Qual:  q,
		Flags: flags,
	})
}

func repeat(s string, n int) string { return string(bytes.Repeat([]byte(s), n)) }

func checkInvariant(c *check.C, r *read.Record) {
	b := r.Bounds()
	c.Check(b.UnclippedStart <= b.AlignmentStart && b.AlignmentStart <= b.AlignmentEnd && b.AlignmentEnd <= b.UnclippedEnd,
		check.Equals, true, check.Commentf("%s", utter.Sdump(b)))
	c.Check(b, check.Equals, cigar.NewBounds(b.AlignmentStart, r.Cigar()))
	_, n := r.Cigar().Lengths()
	c.Check(r.Len(), check.Equals, n)
	c.Check(len(r.Quals()), check.Equals, n)
}

func (s *S) TestPolyG(c *check.C) {
	r := newRecord(1000, "50M", repeat("A", 38)+repeat("G", 12), 35, 0)
	c.Check(TrimPolyG(r, 10), check.Equals, true)
	c.Check(r.TrimCount(), check.Equals, 12)
	c.Check(r.Cigar().String(), check.Equals, "38M")
	c.Check(r.Bases(), check.DeepEquals, []byte(repeat("A", 38)))
	c.Check(r.AlignmentStart(), check.Equals, 1000)
	checkInvariant(c, r)

	r = newRecord(1000, "50M", repeat("C", 12)+repeat("A", 38), 35, sam.Reverse)
	c.Check(TrimPolyG(r, 10), check.Equals, true)
	c.Check(r.TrimCount(), check.Equals, 12)
	c.Check(r.Cigar().String(), check.Equals, "38M")
	c.Check(r.AlignmentStart(), check.Equals, 1012)
	checkInvariant(c, r)

	// Trailing C runs on the forward strand and leading G runs on
	// the reverse strand are not trimmed.
	r = newRecord(1000, "50M", repeat("A", 38)+repeat("C", 12), 35, 0)
	c.Check(TrimPolyG(r, 10), check.Equals, false)
	r = newRecord(1000, "50M", repeat("G", 12)+repeat("A", 38), 35, sam.Reverse)
	c.Check(TrimPolyG(r, 10), check.Equals, false)
}

func (s *S) TestPolyGNoOp(c *check.C) {
	bases := repeat("A", 41) + repeat("G", 9)
	r := newRecord(1000, "5S45M", bases, 35, 0)
	bounds := r.Bounds()
	quals := append([]byte(nil), r.Quals()...)
	for i := 0; i < 2; i++ {
		c.Check(TrimPolyG(r, 10), check.Equals, false)
		c.Check(r.Bases(), check.DeepEquals, []byte(bases))
		c.Check(r.Quals(), check.DeepEquals, quals)
		c.Check(r.Bounds(), check.Equals, bounds)
		c.Check(r.TrimCount(), check.Equals, 0)
	}
}

func (s *S) TestEdgeIndelToSoftClip(c *check.C) {
	r := newRecord(1000, "30M5I20M", repeat("A", 55), 35, 0)
	c.Check(ConvertEdgeIndelsToSoftClip(r, 3, 31), check.Equals, true)
	ucs, ok := r.ImpliedUnclippedStart()
	c.Check(ok, check.Equals, true)
	c.Check(ucs, check.Equals, 1030-35)
	uce, ok := r.ImpliedUnclippedEnd()
	c.Check(ok, check.Equals, true)
	c.Check(uce, check.Equals, 1029+25)
	c.Check(r.Cigar().String(), check.Equals, "30M5I20M")
	checkInvariant(c, r)

	r = newRecord(1000, "30M5D20M", repeat("A", 50), 35, 0)
	c.Check(ConvertEdgeIndelsToSoftClip(r, 3, 31), check.Equals, true)
	ucs, _ = r.ImpliedUnclippedStart()
	c.Check(ucs, check.Equals, 1035-30)
	uce, _ = r.ImpliedUnclippedEnd()
	c.Check(uce, check.Equals, 1029+20)

	r = newRecord(1000, "5S30M5I20M", repeat("A", 60), 35, 0)
	c.Check(ConvertEdgeIndelsToSoftClip(r, 3, 31), check.Equals, true)
	_, ok = r.ImpliedUnclippedStart()
	c.Check(ok, check.Equals, false)
	uce, ok = r.ImpliedUnclippedEnd()
	c.Check(ok, check.Equals, true)
	c.Check(uce, check.Equals, 1029+25)

	for _, cs := range []string{"30M40I20M", "30M2D20M", "50M", "10S40M", "30M5N20M", "30M5I5D20M"} {
		cig := cigar.MustParse(cs)
		_, n := cig.Lengths()
		r = newRecord(1000, cs, repeat("A", n), 35, 0)
		c.Check(ConvertEdgeIndelsToSoftClip(r, 3, 31), check.Equals, false, check.Commentf("%s", cs))
		c.Check(r.HasIndelImpliedBounds(), check.Equals, false)
	}
}

func (s *S) TestLowQualSoftClip(c *check.C) {
	p := DefaultParams

	bases := repeat("C", 50)
	r := newRecord(1000, "30M20S", bases, 10, 0)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "30M")
	checkInvariant(c, r)

	// Five low quality outer bases followed by high quality bases.
	r = newRecord(1000, "30M20S", bases, 37, 0)
	q := r.Quals()
	for i := 45; i < 50; i++ {
		q[i] = 10
	}
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "30M6S")
	c.Check(r.UnclippedEnd(), check.Equals, 1035)
	checkInvariant(c, r)

	r = newRecord(1000, "20S30M", bases, 37, sam.Reverse)
	q = r.Quals()
	for i := 0; i < 5; i++ {
		q[i] = 10
	}
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "6S30M")
	c.Check(r.AlignmentStart(), check.Equals, 1000)
	c.Check(r.UnclippedStart(), check.Equals, 994)
	checkInvariant(c, r)

	// The 5' clip is not considered.
	r = newRecord(1000, "20S30M", bases, 10, 0)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, false)

	r = newRecord(1000, "30M20S", bases, 37, 0)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, false)
	c.Check(r.TrimCount(), check.Equals, 0)
}

func (s *S) TestLowQualSoftClipLINE(c *check.C) {
	p := DefaultParams

	bases := repeat("C", 30) + repeat("A", 18) + "CC"
	r := newRecord(1000, "30M20S", bases, 10, 0)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "30M18S")

	bases = "GG" + repeat("T", 18) + repeat("C", 30)
	r = newRecord(1000, "20S30M", bases, 10, sam.Reverse)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "18S30M")

	// The motif extends beyond the test window.
	bases = repeat("C", 30) + repeat("A", 22) + "CC"
	r = newRecord(1000, "30M24S", bases, 10, 0)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "30M22S")

	// Too few motif bases.
	bases = repeat("C", 30) + repeat("AC", 9) + "CC"
	r = newRecord(1000, "30M20S", bases, 10, 0)
	c.Check(p.TrimLowQualSoftClip(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "30M")
}

func (s *S) TestLowQualBases(c *check.C) {
	p := DefaultParams

	r := newRecord(1000, "50M", repeat("A", 50), 37, 0)
	q := r.Quals()
	for i := 44; i < 50; i++ {
		q[i] = 5
	}
	q[40] = 5
	c.Check(p.TrimLowQualBases(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "44M")
	checkInvariant(c, r)

	r = newRecord(1000, "50M", repeat("A", 50), 37, sam.Reverse)
	q = r.Quals()
	for i := 0; i < 6; i++ {
		q[i] = 5
	}
	c.Check(p.TrimLowQualBases(r), check.Equals, true)
	c.Check(r.Cigar().String(), check.Equals, "44M")
	c.Check(r.AlignmentStart(), check.Equals, 1006)
	checkInvariant(c, r)

	r = newRecord(1000, "50M", repeat("A", 50), 5, 0)
	c.Check(p.TrimLowQualBases(r), check.Equals, true)
	c.Check(r.Len(), check.Equals, 25)

	r = newRecord(1000, "50M", repeat("A", 50), 37, 0)
	c.Check(p.TrimLowQualBases(r), check.Equals, false)
	c.Check(r.Len(), check.Equals, 50)
}

func (s *S) TestApply(c *check.C) {
	p := DefaultParams

	r := newRecord(1000, "30M5I20M", repeat("A", 51)+"GGGG", 37, 0)
	res := p.Apply(r)
	c.Check(res, check.Equals, Result{PolyGTrimmed: true, IndelSoftClip: true})
	c.Check(r.Cigar().String(), check.Equals, "30M5I16M")
	ucs, _ := r.ImpliedUnclippedStart()
	c.Check(ucs, check.Equals, 995)
	uce, _ := r.ImpliedUnclippedEnd()
	c.Check(uce, check.Equals, 1029+21)
	checkInvariant(c, r)

	r = newRecord(1000, "10S40M", repeat("A", 50), 37, 0)
	c.Check(p.Apply(r), check.Equals, Result{})
	c.Check(p.Apply(r), check.Equals, Result{})
	c.Check(r.TrimCount(), check.Equals, 0)

	bad := read.New(read.Alignment{Name: "bad", Pos: 1, Seq: []byte("GGGGGG"), Flags: sam.Unmapped})
	c.Check(p.Apply(bad), check.Equals, Result{})
	c.Check(bad.Len(), check.Equals, 6)
}

func (s *S) TestComposition(c *check.C) {
	p := DefaultParams
	p.PolyGThreshold = 3
	for _, test := range []struct {
		cigar string
		flags sam.Flags
	}{
		{cigar: "10S30M10S", flags: 0},
		{cigar: "10S30M10S", flags: sam.Reverse},
		{cigar: "20M4D10M3I17M", flags: 0},
		{cigar: "3H5S40M5S", flags: sam.Reverse},
	} {
		cig := cigar.MustParse(test.cigar)
		_, n := cig.Lengths()
		seq := make([]byte, n)
		qual := make([]byte, n)
		for i := range seq {
			seq[i] = "ACGTG"[i%5]
			qual[i] = byte(i * 7 % 40)
		}
		copy(seq[n-4:], "GGGG")
		copy(seq, "CCC")
		r := read.New(read.Alignment{Name: "c", Chrom: "chr1", Pos: 500, Cigar: cig, Seq: seq, Qual: qual, Flags: test.flags})
		TrimPolyG(r, p.PolyGThreshold)
		checkInvariant(c, r)
		p.TrimLowQualSoftClip(r)
		checkInvariant(c, r)
		p.TrimLowQualBases(r)
		checkInvariant(c, r)
		ConvertEdgeIndelsToSoftClip(r, p.MinIndelLength, p.MaxIndelLength)
		checkInvariant(c, r)
		c.Check(r.MinUnclippedStart() <= r.AlignmentStart(), check.Equals, true)
		c.Check(r.MaxUnclippedEnd() >= r.AlignmentEnd(), check.Equals, true)
	}
}
