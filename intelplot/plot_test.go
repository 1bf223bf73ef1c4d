// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
)

func TestBinStat(t *testing.T) {
	tab := new(table.Builder).
		Add("intelligibility", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, math.NaN()}).
		Done()
	g := binStat{"intelligibility", 2}.F(tab)
	out := g.Table(table.RootGroupID)

	if want := []float64{2.5, 7.5}; !reflect.DeepEqual(out.MustColumn("intelligibility"), want) {
		t.Errorf("centers: want %v, got %v", want, out.MustColumn("intelligibility"))
	}
	// NaN is dropped; 10 lands in the closed last bin.
	if want := []float64{5, 5}; !reflect.DeepEqual(out.MustColumn("count"), want) {
		t.Errorf("counts: want %v, got %v", want, out.MustColumn("count"))
	}
}

func TestBinStatDegenerate(t *testing.T) {
	// All values equal: everything lands in the last bin rather
	// than dividing by a zero width.
	tab := new(table.Builder).
		Add("intelligibility", []float64{5, 5, 5}).
		Done()
	out := binStat{"intelligibility", 4}.F(tab).Table(table.RootGroupID)
	counts := out.MustColumn("count").([]float64)
	var total float64
	for _, c := range counts {
		total += c
	}
	if total != 3 {
		t.Errorf("want 3 values binned, got %v", total)
	}
}

func TestDropNaN(t *testing.T) {
	tab := new(table.Builder).
		Add("score", []float64{1, math.NaN(), 3}).
		Add("intelligibility", []float64{70, 80, math.NaN()}).
		Done()
	g := dropNaN(tab, "score", "intelligibility")
	out := g.Table(table.RootGroupID)
	if out.Len() != 1 {
		t.Fatalf("rows: want 1, got %d", out.Len())
	}
	if got := out.MustColumn("score").([]float64); got[0] != 1 {
		t.Errorf("score: want [1], got %v", got)
	}
}
