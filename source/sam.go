// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/biogo/hts/sam"
	"github.com/ulikunitz/xz"
)

// SAM is an in-memory Source holding the records of a SAM file.
type SAM struct {
	h    *sam.Header
	recs []*sam.Record
}

// ReadSAM reads all the records of the SAM text stream r. Records are
// sorted by reference and position if the input is not already sorted.
func ReadSAM(r io.Reader) (*SAM, error) {
	sr, err := sam.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("source: failed to read SAM header: %v", err)
	}
	s := &SAM{h: sr.Header()}
	for {
		rec, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: failed to read SAM record: %v", err)
		}
		s.recs = append(s.recs, rec)
	}
	sort.SliceStable(s.recs, func(i, j int) bool {
		return less(s.recs[i], s.recs[j])
	})
	return s, nil
}

// less orders records by reference ID and position with
// unplaced records last.
func less(a, b *sam.Record) bool {
	ai, bi := a.Ref.ID(), b.Ref.ID()
	switch {
	case ai == bi:
		return a.Pos < b.Pos
	case ai < 0:
		return false
	case bi < 0:
		return true
	default:
		return ai < bi
	}
}

// OpenSAM reads the SAM file at path. Files with an .xz suffix
// are decompressed.
func OpenSAM(path string) (*SAM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		r, err = xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("source: failed to open xz stream: %v", err)
		}
	}
	return ReadSAM(r)
}

// Header returns the SAM header.
func (s *SAM) Header() *sam.Header { return s.h }

// Len returns the number of records held by s.
func (s *SAM) Len() int { return len(s.recs) }

// Query returns an iterator over the records overlapping reg.
func (s *SAM) Query(reg Region) (Iterator, error) {
	var recs []*sam.Record
	for _, rec := range s.recs {
		if reg.overlaps(rec) {
			recs = append(recs, rec)
		}
	}
	return &slice{recs: recs}, nil
}

// Unmapped returns an iterator over records without a reference sequence.
func (s *SAM) Unmapped() (Iterator, error) {
	i := sort.Search(len(s.recs), func(i int) bool { return unplaced(s.recs[i]) })
	return &slice{recs: s.recs[i:]}, nil
}
