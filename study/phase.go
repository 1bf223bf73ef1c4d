// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package study

import "fmt"

// Phase identifies the testing timepoint of an observation. Phase is
// ordinal: Pretest orders before Posttest regardless of the order the
// phases appear in a data file.
type Phase int

const (
	Pretest Phase = iota
	Posttest
)

var phaseNames = [...]string{Pretest: "pretest", Posttest: "posttest"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase returns the Phase named by s.
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if s == name {
			return Phase(p), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// Phases is a Phase column. It implements sort.Interface, which go-gg
// ordinal scales and column orderings use to keep pretest first.
type Phases []Phase

func (s Phases) Len() int           { return len(s) }
func (s Phases) Less(i, j int) bool { return s[i] < s[j] }
func (s Phases) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
