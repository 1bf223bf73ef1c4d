// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tableio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-intel/study"
)

func TestWriteCSV(t *testing.T) {
	tab := new(table.Builder).
		Add("subject", []int{1, 2}).
		Add("speaker", []string{"M1", "F1"}).
		Add("phase", study.Phases{study.Pretest, study.Posttest}).
		Add("intelligibility", []float64{70.5, math.NaN()}).
		Done()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := WriteCSV(path, tab); err != nil {
		t.Fatalf("unexpected error %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	want := "subject,speaker,phase,intelligibility\n" +
		"1,M1,pretest,70.5\n" +
		"2,F1,posttest,NA\n"
	if string(data) != want {
		t.Errorf("want:\n%sgot:\n%s", want, data)
	}

	// The temporary file must not survive.
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if len(ents) != 1 || ents[0].Name() != "out.csv" {
		t.Errorf("output directory should hold only out.csv; got %v", ents)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tab := new(table.Builder).
		Add("subject", []int{1, 1}).
		Add("speaker", []string{"M1", "M1"}).
		Add("phase", study.Phases{study.Pretest, study.Posttest}).
		Add("intelligibility", []float64{61.5, math.NaN()}).
		Done()

	path := filepath.Join(t.TempDir(), "round.csv")
	if err := WriteCSV(path, tab); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	back, err := study.Load(path)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if got := back.MustColumn("intelligibility").([]float64); got[0] != 61.5 || !math.IsNaN(got[1]) {
		t.Errorf("round trip: want [61.5 NaN], got %v", got)
	}
	if got := back.MustColumn("phase").(study.Phases); got[0] != study.Pretest || got[1] != study.Posttest {
		t.Errorf("round trip: bad phases %v", got)
	}
}

func TestWriteCSVBadDir(t *testing.T) {
	tab := new(table.Builder).Add("x", []int{1}).Done()
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := WriteCSV(path, tab); err == nil {
		t.Errorf("writing into a missing directory should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("no output file should exist after a failed write")
	}
}
