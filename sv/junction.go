// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sv provides structural variant breakpoint types.
package sv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Orientation is the direction in which breakpoint supporting reads
// extend from a junction. The zero value is an unspecified orientation.
type Orientation int8

const (
	Reverse Orientation = -1 // Supporting reads extend leftwards.
	Forward Orientation = 1  // Supporting reads extend rightwards.
)

// IsForward returns whether o is Forward.
func (o Orientation) IsForward() bool { return o == Forward }

// IsReverse returns whether o is Reverse.
func (o Orientation) IsReverse() bool { return o == Reverse }

// Opposite returns the opposite orientation of o.
func (o Orientation) Opposite() Orientation { return -o }

func (o Orientation) String() string {
	switch o {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "."
	}
}

// Junction is a candidate structural variant breakpoint.
type Junction struct {
	Chrom    string
	Position int
	Orient   Orientation

	// Indel marks a junction formed by an insertion or
	// deletion within a read alignment.
	Indel bool
}

func (j Junction) String() string {
	s := fmt.Sprintf("%s:%d:%v", j.Chrom, j.Position, j.Orient)
	if j.Indel {
		s += ":indel"
	}
	return s
}

var errJunctionFormat = errors.New("sv: junction must be chrom:position:orientation[:indel]")

// ParseJunction parses a junction in the format produced by Junction.String.
func ParseJunction(s string) (Junction, error) {
	f := strings.Split(s, ":")
	if len(f) < 3 || len(f) > 4 || f[0] == "" {
		return Junction{}, errJunctionFormat
	}
	pos, err := strconv.Atoi(f[1])
	if err != nil || pos < 1 {
		return Junction{}, fmt.Errorf("sv: invalid junction position %q", f[1])
	}
	j := Junction{Chrom: f[0], Position: pos}
	switch f[2] {
	case "+", "1":
		j.Orient = Forward
	case "-", "-1":
		j.Orient = Reverse
	default:
		return Junction{}, fmt.Errorf("sv: invalid junction orientation %q", f[2])
	}
	if len(f) == 4 {
		if f[3] != "indel" {
			return Junction{}, errJunctionFormat
		}
		j.Indel = true
	}
	return j, nil
}
