// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refgenome provides access to reference genome sequence.
package refgenome

import (
	"errors"
	"fmt"
)

// Genome provides reference bases. Implementations must be safe for
// concurrent use.
type Genome interface {
	// Bases returns the upper case bases of the named sequence
	// between the 1-based inclusive positions start and end.
	Bases(chrom string, start, end int) ([]byte, error)
}

var (
	ErrNoSequence = errors.New("refgenome: no sequence")
	ErrRange      = errors.New("refgenome: index out of range")
)

// Map is an in-memory Genome keyed by sequence name. Sequences must be
// upper case. A Map must not be modified while in use.
type Map map[string][]byte

// Bases implements the Genome interface.
func (m Map) Bases(chrom string, start, end int) ([]byte, error) {
	seq, ok := m[chrom]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSequence, chrom)
	}
	if start < 1 || end < start || len(seq) < end {
		return nil, ErrRange
	}
	return append([]byte(nil), seq[start-1:end]...), nil
}
