// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prep prepares aligned reads for breakpoint evidence collection.
//
// Reads are processed in independent reference partitions. Within a
// partition reads aligned to or paired with decoy sequences are dropped,
// supplementary alignments duplicating their primary are dropped, the
// remaining reads are normalised and primary mates are linked.
package prep

import (
	"fmt"
	"strings"

	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/biogo/svread/adjust"
	"github.com/biogo/svread/read"
	"github.com/biogo/svread/source"
)

// DefaultDecoys are the default decoy contig name patterns.
var DefaultDecoys = []string{"hs37d5", "_decoy"}

// Processor processes the reads of a partition.
type Processor struct {
	// Adjust holds the read normalisation parameters.
	Adjust adjust.Params

	// Decoys holds substrings identifying decoy
	// reference sequence names.
	Decoys []string
}

// NewProcessor returns a Processor using default parameters.
func NewProcessor() *Processor {
	return &Processor{Adjust: adjust.DefaultParams, Decoys: DefaultDecoys}
}

// Partition is the result of processing a region.
type Partition struct {
	Region source.Region

	// Reads holds the retained reads in source order.
	Reads []*read.Record

	Stats ReadStats
}

// IsDecoy returns whether the named reference sequence is a decoy.
func (p *Processor) IsDecoy(chrom string) bool {
	if chrom == "" {
		return false
	}
	for _, d := range p.Decoys {
		if strings.Contains(chrom, d) {
			return true
		}
	}
	return false
}

var rgTag = sam.NewTag("RG")

// sampleIndexes returns a mapping from read group ID to
// read group index for h.
func sampleIndexes(h *sam.Header) map[string]int {
	m := make(map[string]int)
	if h == nil {
		return m
	}
	for i, rg := range h.RGs() {
		m[rg.Name()] = i
	}
	return m
}

func sampleIndex(m map[string]int, rec *sam.Record) int {
	aux := rec.AuxFields.Get(rgTag)
	if aux == nil {
		return 0
	}
	id, _ := aux.Value().(string)
	return m[id]
}

// Process reads and processes the records of src that start within reg.
// Records that start before reg are left to the partition that owns them.
func (p *Processor) Process(src source.Source, reg source.Region) (*Partition, error) {
	it, err := src.Query(reg)
	if err != nil {
		return nil, err
	}
	part := &Partition{Region: reg}
	samples := sampleIndexes(src.Header())
	mates := make(map[string]*read.Record)
	for it.Next() {
		sr := it.Record()
		if !reg.Contains(sr.Ref.Name(), sr.Pos+1) {
			continue
		}
		r := read.FromSAM(sr, sampleIndex(samples, sr))
		if p.add(part, r) {
			p.link(mates, r)
		}
	}
	err = it.Close()
	if err != nil {
		return nil, fmt.Errorf("prep: failed to read %v: %v", reg, err)
	}
	return part, nil
}

// add filters and normalises r, adding it to part if it is retained.
func (p *Processor) add(part *Partition, r *read.Record) bool {
	part.Stats.TotalReads++
	if p.IsDecoy(r.Chrom()) || p.IsDecoy(r.MateChrom()) {
		part.Stats.DecoySequences++
		return false
	}
	if r.HasIdenticalSupplementary() {
		part.Stats.IdenticalSupplementaries++
		return false
	}
	res := p.Adjust.Apply(r)
	if res.PolyGTrimmed {
		part.Stats.PolyGTrimmed++
	}
	if res.LowQualTrimmed {
		part.Stats.LowQualTrimmed++
	}
	if res.IndelSoftClip {
		part.Stats.IndelSoftClipConverted++
	}
	part.Reads = append(part.Reads, r)
	return true
}

// link links r to a previously seen primary alignment of the same
// fragment and sample.
func (p *Processor) link(mates map[string]*read.Record, r *read.Record) {
	if !r.IsPaired() || r.IsSecondary() || r.IsSupplementary() {
		return
	}
	key := fmt.Sprintf("%s\x00%d", r.Name(), r.SampleIndex())
	m, ok := mates[key]
	if !ok {
		mates[key] = r
		return
	}
	if m.IsFirstOfPair() == r.IsFirstOfPair() {
		return
	}
	m.SetMate(r)
	r.SetMate(m)
	delete(mates, key)
}

// Run processes the regions of src using up to threads concurrent workers,
// calling fn with each completed partition. fn may be called concurrently.
// The merged statistics of all successfully processed partitions are
// returned with the first error encountered.
func Run(src source.Source, regions []source.Region, p *Processor, threads int, fn func(*Partition) error) (ReadStats, error) {
	if threads < 1 {
		threads = 1
	}
	log.Printf("prep: processing %d regions with %d workers", len(regions), threads)
	stats := make([]ReadStats, len(regions))
	err := traverse.Limit(threads).Each(len(regions), func(i int) error {
		reg := regions[i]
		if p.IsDecoy(reg.Chrom) {
			log.Debug.Printf("prep: skipping decoy region %v", reg)
			return nil
		}
		part, err := p.Process(src, reg)
		if err != nil {
			log.Error.Printf("prep: %v", err)
			return err
		}
		log.Debug.Printf("prep: %v: %v", reg, part.Stats)
		stats[i] = part.Stats
		if fn == nil {
			return nil
		}
		return fn(part)
	})
	var total ReadStats
	for _, s := range stats {
		total.Merge(s)
	}
	log.Printf("prep: %v", total)
	return total, err
}
