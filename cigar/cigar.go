// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cigar implements the CIGAR operation model used to relate read
// bases to reference coordinates.
package cigar

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/biogo/hts/sam"
)

// Cigar is a set of CIGAR operations.
type Cigar []Op

// IsValid returns whether the CIGAR is valid for a record of the given
// sequence length. Validity is defined by the sum of read consuming operations
// matching the given length and all operation types being known.
func (c Cigar) IsValid(length int) bool {
	for _, co := range c {
		if co.Type() >= lastOp {
			return false
		}
		if co.Type().ConsumesRead() {
			length -= co.Len()
		}
	}
	return length == 0
}

// String returns the CIGAR string for c.
func (c Cigar) String() string {
	if len(c) == 0 {
		return "*"
	}
	var b bytes.Buffer
	for _, co := range c {
		fmt.Fprint(&b, co)
	}
	return b.String()
}

// Lengths returns the number of reference and read bases described by the Cigar.
func (c Cigar) Lengths() (ref, read int) {
	for _, co := range c {
		t := co.Type()
		if t.ConsumesReference() {
			ref += co.Len()
		}
		if t.ConsumesRead() {
			read += co.Len()
		}
	}
	return ref, read
}

// LeftClip returns the length of the soft clip at the start of the
// alignment. Hard clips outside the soft clip are skipped.
func (c Cigar) LeftClip() int {
	for _, co := range c {
		switch co.Type() {
		case HardClipped:
			continue
		case SoftClipped:
			return co.Len()
		}
		break
	}
	return 0
}

// RightClip returns the length of the soft clip at the end of the
// alignment. Hard clips outside the soft clip are skipped.
func (c Cigar) RightClip() int {
	for i := len(c) - 1; i >= 0; i-- {
		switch c[i].Type() {
		case HardClipped:
			continue
		case SoftClipped:
			return c[i].Len()
		}
		break
	}
	return 0
}

// Clone returns a copy of c.
func (c Cigar) Clone() Cigar {
	if c == nil {
		return nil
	}
	return append(Cigar(nil), c...)
}

// Op is a single CIGAR operation including the operation type and the
// length of the operation.
type Op uint32

// NewOp returns a CIGAR operation of the specified type with length n.
func NewOp(t OpType, n int) Op {
	return Op(t) | (Op(n) << 4)
}

// Type returns the type of the CIGAR operation for the Op.
func (co Op) Type() OpType { return OpType(co & 0xf) }

// Len returns the number of positions affected by the Op CIGAR operation.
func (co Op) Len() int { return int(co >> 4) }

// String returns the string representation of the Op
func (co Op) String() string { return fmt.Sprintf("%d%s", co.Len(), co.Type().String()) }

// An OpType represents the type of operation described by an Op.
type OpType byte

const (
	Match       OpType = iota // Alignment match (can be a sequence match or mismatch).
	Insertion                 // Insertion to the reference.
	Deletion                  // Deletion from the reference.
	Skipped                   // Skipped region from the reference.
	SoftClipped               // Soft clipping (clipped sequences present in SEQ).
	HardClipped               // Hard clipping (clipped sequences NOT present in SEQ).
	Padded                    // Padding (silent deletion from padded reference).
	Equal                     // Sequence match.
	Mismatch                  // Sequence mismatch.
	lastOp
)

var opNames = []string{"M", "I", "D", "N", "S", "H", "P", "=", "X", "?"}

// String returns the string representation of an OpType.
func (t OpType) String() string {
	if t > lastOp {
		t = lastOp
	}
	return opNames[t]
}

// ConsumesReference returns whether the operation advances along the reference.
//
//	              Read  Reference
//	Match          1        1
//	Insertion      1        0
//	Deletion       0        1
//	Skipped        0        1
//	SoftClipped    1        0
//	HardClipped    0        0
//	Padded         0        0
//	Equal          1        1
//	Mismatch       1        1
func (t OpType) ConsumesReference() bool {
	switch t {
	case Match, Deletion, Skipped, Equal, Mismatch:
		return true
	case Insertion, SoftClipped, HardClipped, Padded:
		return false
	default:
		return false
	}
}

// ConsumesRead returns whether the operation advances along the read bases.
func (t OpType) ConsumesRead() bool {
	switch t {
	case Match, Insertion, SoftClipped, Equal, Mismatch:
		return true
	case Deletion, Skipped, HardClipped, Padded:
		return false
	default:
		return false
	}
}

// IsAlignment returns whether the operation aligns read bases to reference bases.
func (t OpType) IsAlignment() bool {
	switch t {
	case Match, Equal, Mismatch:
		return true
	case Insertion, Deletion, Skipped, SoftClipped, HardClipped, Padded:
		return false
	default:
		return false
	}
}

// IsIndel returns whether the operation is an insertion or a deletion.
func (t OpType) IsIndel() bool {
	switch t {
	case Insertion, Deletion:
		return true
	case Match, Skipped, SoftClipped, HardClipped, Padded, Equal, Mismatch:
		return false
	default:
		return false
	}
}

// IsClip returns whether the operation is a soft or hard clip.
func (t OpType) IsClip() bool {
	switch t {
	case SoftClipped, HardClipped:
		return true
	case Match, Insertion, Deletion, Skipped, Padded, Equal, Mismatch:
		return false
	default:
		return false
	}
}

var opTypeLookup [256]OpType

func init() {
	for i := range opTypeLookup {
		opTypeLookup[i] = lastOp
	}
	for op, c := range []byte{'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X'} {
		opTypeLookup[c] = OpType(op)
	}
}

// Parse returns a Cigar parsed from the provided string.
func Parse(s string) (Cigar, error) {
	if s == "*" || s == "" {
		return nil, nil
	}
	var (
		c Cigar
		n int
	)
	digits := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		if '0' <= b && b <= '9' {
			n = n*10 + int(b-'0')
			if n >= 1<<28 {
				return nil, fmt.Errorf("cigar: invalid operation count in %q at %d", s, i)
			}
			digits = true
			continue
		}
		op := opTypeLookup[b]
		if op == lastOp {
			return nil, fmt.Errorf("cigar: failed to parse %q: unknown operation %q", s, b)
		}
		if !digits {
			return nil, fmt.Errorf("cigar: failed to parse %q: missing length at %d", s, i)
		}
		c = append(c, NewOp(op, n))
		n = 0
		digits = false
	}
	if digits {
		return nil, fmt.Errorf("cigar: failed to parse %q: trailing length", s)
	}
	return c, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Cigar {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

var errBackOp = errors.New("cigar: backward skip operation not supported")

// FromSAM returns the Cigar equivalent of a sam.Cigar. Backward skip
// operations have no equivalent and result in an error.
func FromSAM(sc sam.Cigar) (Cigar, error) {
	if len(sc) == 0 {
		return nil, nil
	}
	c := make(Cigar, len(sc))
	for i, co := range sc {
		var t OpType
		switch co.Type() {
		case sam.CigarMatch:
			t = Match
		case sam.CigarInsertion:
			t = Insertion
		case sam.CigarDeletion:
			t = Deletion
		case sam.CigarSkipped:
			t = Skipped
		case sam.CigarSoftClipped:
			t = SoftClipped
		case sam.CigarHardClipped:
			t = HardClipped
		case sam.CigarPadded:
			t = Padded
		case sam.CigarEqual:
			t = Equal
		case sam.CigarMismatch:
			t = Mismatch
		case sam.CigarBack:
			return nil, errBackOp
		default:
			return nil, fmt.Errorf("cigar: unknown operation %v", co.Type())
		}
		c[i] = NewOp(t, co.Len())
	}
	return c, nil
}
