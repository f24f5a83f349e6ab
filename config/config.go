// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides TOML configuration of read preparation and
// junction classification.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/biogo/svread/adjust"
	"github.com/biogo/svread/junction"
	"github.com/biogo/svread/prep"
	"github.com/biogo/svread/refgenome"
	"github.com/biogo/svread/source"
)

// Config holds the complete set of processing parameters.
type Config struct {
	// Threads is the number of partitions processed concurrently.
	Threads int `toml:"threads"`

	// PartitionSize is the length of the reference partitions
	// used when no regions are specified. A zero value uses
	// complete reference sequences.
	PartitionSize int `toml:"partition_size"`

	// Regions restricts processing to the listed regions.
	Regions []string `toml:"regions"`

	// Decoys holds substrings identifying decoy reference names.
	Decoys []string `toml:"decoys"`

	Adjust   adjust.Params   `toml:"adjust"`
	Junction junction.Params `toml:"junction"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Threads:       1,
		PartitionSize: 1e6,
		Decoys:        append([]string(nil), prep.DefaultDecoys...),
		Adjust:        adjust.DefaultParams,
		Junction:      junction.DefaultParams,
	}
}

// Load reads a TOML configuration from r. Fields absent from the input
// keep their default values. Unknown keys are an error.
func Load(r io.Reader) (Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %v", err)
	}
	if u := md.Undecoded(); len(u) != 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	return c, c.Validate()
}

// LoadFile reads a TOML configuration from the file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}

// Write writes c to w in TOML format.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate returns an error if c holds parameters that
// cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Threads < 1:
		return errors.New("config: threads must be positive")
	case c.PartitionSize < 0:
		return errors.New("config: negative partition size")
	case c.Adjust.LowQualTrimFraction < 0 || c.Adjust.LowQualTrimFraction > 1:
		return errors.New("config: low quality trim fraction out of range")
	case c.Adjust.MinIndelLength > c.Adjust.MaxIndelLength:
		return errors.New("config: invalid edge indel length range")
	case c.Adjust.LineMinCount > c.Adjust.LineTestLength:
		return errors.New("config: LINE motif count exceeds test length")
	case c.Junction.MinMismatchSpan > c.Junction.MaxMismatchSpan:
		return errors.New("config: invalid mismatch span range")
	case c.Junction.MaxMismatchOverlap < 0 || c.Junction.ClipTolerance < 0:
		return errors.New("config: negative junction tolerance")
	}
	_, err := c.ParseRegions()
	return err
}

// ParseRegions returns the parsed configured regions.
func (c Config) ParseRegions() ([]source.Region, error) {
	regs := make([]source.Region, 0, len(c.Regions))
	for _, s := range c.Regions {
		r, err := source.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, nil
}

// Processor returns a partition processor using the parameters in c.
func (c Config) Processor() *prep.Processor {
	return &prep.Processor{Adjust: c.Adjust, Decoys: c.Decoys}
}

// Classifier returns a junction classifier using the parameters in c
// and the reference ref.
func (c Config) Classifier(ref refgenome.Genome) *junction.Classifier {
	return &junction.Classifier{Params: c.Junction, Ref: ref}
}
