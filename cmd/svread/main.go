// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// svread prepares the reads of a BAM or SAM file for breakpoint evidence
// collection and reports read statistics and junction support.
//
// Usage:
//
//	svread -bam reads.bam [-ref ref.fa] [-config svread.toml] [-junction chr1:1000:+ ...]
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/grailbio/base/log"

	"github.com/biogo/svread/config"
	"github.com/biogo/svread/coords"
	"github.com/biogo/svread/junction"
	"github.com/biogo/svread/prep"
	"github.com/biogo/svread/refgenome"
	"github.com/biogo/svread/source"
	"github.com/biogo/svread/sv"
)

var (
	bamPath    = flag.String("bam", "", "indexed BAM input")
	baiPath    = flag.String("bai", "", "BAM index (default <bam>.bai)")
	samPath    = flag.String("sam", "", "SAM input, may be xz compressed (alternative to -bam)")
	refPath    = flag.String("ref", "", "FASTA reference for mismatch based junction support")
	confPath   = flag.String("config", "", "TOML configuration file")
	threads    = flag.Int("threads", 0, "number of concurrent partitions (overrides configuration)")
	regions    = flag.String("region", "", "comma separated regions to process (overrides configuration)")
	dumpConfig = flag.Bool("dump-config", false, "print the effective configuration and exit")
	verbose    = flag.Bool("v", false, "print supporting reads")
	junctions  junctionList
)

func init() {
	flag.Var(&junctions, "junction", "junction to evaluate as chrom:pos:+|-[:indel] (may be repeated)")
}

type junctionList []sv.Junction

func (l *junctionList) String() string {
	s := make([]string, len(*l))
	for i, j := range *l {
		s[i] = j.String()
	}
	return strings.Join(s, ",")
}

func (l *junctionList) Set(s string) error {
	j, err := sv.ParseJunction(s)
	if err != nil {
		return err
	}
	for _, e := range *l {
		if e == j {
			return nil
		}
	}
	*l = append(*l, j)
	return nil
}

// tally holds the support counts for a junction.
type tally struct {
	counts    [junction.ClipCrossing + 1]int
	extension int
}

func main() {
	flag.Parse()

	conf := config.Default()
	if *confPath != "" {
		var err error
		conf, err = config.LoadFile(*confPath)
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
	}
	if *threads > 0 {
		conf.Threads = *threads
	}
	if *regions != "" {
		conf.Regions = strings.Split(*regions, ",")
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}
	if *dumpConfig {
		if err := conf.Write(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	src, err := openSource()
	if err != nil {
		log.Fatalf("failed to open alignments: %v", err)
	}

	var cl *junction.Classifier
	if *refPath != "" {
		ref, err := refgenome.Open(*refPath)
		if err != nil {
			log.Fatalf("failed to open reference: %v", err)
		}
		defer ref.Close()
		cl = conf.Classifier(ref)
	} else {
		cl = conf.Classifier(nil)
	}

	regs, _ := conf.ParseRegions()
	if len(regs) == 0 {
		regs = source.Partition(src.Header(), conf.PartitionSize)
	}

	var mu sync.Mutex
	support := make(map[sv.Junction]*tally)
	for _, j := range junctions {
		support[j] = &tally{}
	}
	stats, err := prep.Run(src, regs, conf.Processor(), conf.Threads, func(p *prep.Partition) error {
		if len(junctions) == 0 {
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		for _, r := range p.Reads {
			for _, j := range junctions {
				s := cl.Classify(r, j)
				if !s.Supports() {
					continue
				}
				t := support[j]
				t.counts[s.Kind]++
				t.extension += s.ExtensionLength
				if *verbose {
					idx, ok := coords.JunctionReadIndex(r, j)
					fmt.Printf("%v\t%v\t%v\text=%d\tindex=%s\n", j, r, s.Kind, s.ExtensionLength, index(idx, ok))
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d total reads\n", stats.TotalReads)
	fmt.Printf("%d poly-G trimmed\n", stats.PolyGTrimmed)
	fmt.Printf("%d low quality trimmed\n", stats.LowQualTrimmed)
	fmt.Printf("%d edge indels converted to soft clips\n", stats.IndelSoftClipConverted)
	fmt.Printf("%d decoy sequence reads\n", stats.DecoySequences)
	fmt.Printf("%d identical supplementary alignments\n", stats.IdenticalSupplementaries)

	sorted := append(junctionList(nil), junctions...)
	sort.Slice(sorted, func(i, k int) bool {
		a, b := sorted[i], sorted[k]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		return a.Position < b.Position
	})
	for _, j := range sorted {
		t := support[j]
		fmt.Printf("%v\texact=%d\tcrossing=%d\tclip-crossing=%d\textension=%d\n",
			j,
			t.counts[junction.ExactClip],
			t.counts[junction.CrossingMismatch],
			t.counts[junction.ClipCrossing],
			t.extension,
		)
	}
}

func openSource() (source.Source, error) {
	switch {
	case *bamPath != "" && *samPath != "":
		return nil, fmt.Errorf("only one of -bam and -sam may be specified")
	case *bamPath != "":
		return source.OpenBAM(*bamPath, *baiPath)
	case *samPath != "":
		return source.OpenSAM(*samPath)
	default:
		flag.Usage()
		os.Exit(2)
		panic("unreachable")
	}
}

func index(i int, ok bool) string {
	if !ok {
		return "*"
	}
	return fmt.Sprint(i)
}
