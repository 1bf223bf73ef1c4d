// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package study

import (
	"errors"
	"io/fs"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tab, err := Load("testdata/listeners.csv")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}

	wantCols := []string{"subject", "speaker", "phase", "intelligibility", "attention", "memory", "speed", "vocabulary", "reasoning"}
	if got := tab.Columns(); !reflect.DeepEqual(got, wantCols) {
		t.Errorf("columns: want %v, got %v", wantCols, got)
	}
	if got := tab.Len(); got != 16 {
		t.Errorf("rows: want 16, got %d", got)
	}

	if _, ok := tab.MustColumn("subject").([]int); !ok {
		t.Errorf("subject column should be []int; got %T", tab.Column("subject"))
	}
	if _, ok := tab.MustColumn("phase").(Phases); !ok {
		t.Errorf("phase column should be Phases; got %T", tab.Column("phase"))
	}
	intel, ok := tab.MustColumn("intelligibility").([]float64)
	if !ok {
		t.Fatalf("intelligibility column should be []float64; got %T", tab.Column("intelligibility"))
	}
	if intel[0] != 74.2 {
		t.Errorf("intelligibility[0]: want 74.2, got %v", intel[0])
	}

	// Subject 4's speed score is NA.
	speed := tab.MustColumn("speed").([]float64)
	if !math.IsNaN(speed[6]) || !math.IsNaN(speed[7]) {
		t.Errorf("NA should load as NaN; got %v, %v", speed[6], speed[7])
	}

	wantScores := []string{"attention", "memory", "speed", "vocabulary", "reasoning"}
	if got := ScoreColumns(tab); !reflect.DeepEqual(got, wantScores) {
		t.Errorf("score columns: want %v, got %v", wantScores, got)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("testdata/no-such-file.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want fs.ErrNotExist, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	try := func(data string, wantLine int, wantSub string) {
		t.Helper()
		_, err := Parse(strings.NewReader(data))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("want *ParseError, got %v", err)
			return
		}
		if pe.Line != wantLine {
			t.Errorf("want error on line %d, got %v", wantLine, pe)
		}
		if !strings.Contains(pe.Error(), wantSub) {
			t.Errorf("error %q does not mention %q", pe, wantSub)
		}
	}

	const header = "subject,speaker,phase,intelligibility\n"

	// Empty input.
	try("", 1, "missing header")
	// Missing required column.
	try("subject,speaker,intelligibility\n", 1, `missing column "phase"`)
	// Duplicate column.
	try("subject,speaker,phase,phase,intelligibility\n", 1, "duplicate column")
	// Wrong field count.
	try(header+"1,M1,pretest,70\n2,M1,pretest\n", 3, "")
	// Bad subject ID.
	try(header+"x,M1,pretest,70\n", 2, "bad subject ID")
	// Bad phase.
	try(header+"1,M1,midtest,70\n", 2, "unknown phase")
	// Bad score.
	try(header+"1,M1,pretest,wat\n", 2, `bad value "wat"`)
}

func TestParseMissingValues(t *testing.T) {
	tab, err := Parse(strings.NewReader("subject,speaker,phase,intelligibility\n1,M1,pretest,\n1,M1,posttest,NA\n"))
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	intel := tab.MustColumn("intelligibility").([]float64)
	if !math.IsNaN(intel[0]) || !math.IsNaN(intel[1]) {
		t.Errorf("empty and NA fields should load as NaN; got %v", intel)
	}
}
