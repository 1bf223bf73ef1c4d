// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command intelplot renders the standard chart set for a listener
// intelligibility study.
//
// intelplot reads a study CSV file (see package study for the
// schema) and derives three views of it: a wide table with one row
// per subject and one intelligibility column per phase, a long table
// with the cognitive test scores stacked into test/score pairs, and
// a summary table of mean intelligibility by speaker and phase. It
// writes the wide and long tables as CSV files next to the input and
// renders each chart as an SVG file in the output directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-intel/reshape"
	"github.com/aclements/go-intel/study"
	"github.com/aclements/go-intel/summarize"
	"github.com/aclements/go-intel/tableio"
)

func main() {
	log.SetPrefix("intelplot: ")
	log.SetFlags(0)

	var (
		flagData  = flag.String("data", "listeners.csv", "read study data from `file`")
		flagOut   = flag.String("o", ".", "write charts to `dir`")
		flagTable = flag.Bool("table", false, "print the derived tables instead of rendering charts")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	base, err := study.Load(*flagData)
	if err != nil {
		log.Fatalf("load: %s", err)
	}
	scores := study.ScoreColumns(base)
	if len(scores) == 0 {
		log.Fatalf("load: %s has no cognitive test score columns", *flagData)
	}

	// The wide table spreads intelligibility by phase, one row per
	// subject. The score columns vary by phase, so drop them before
	// widening.
	sub := table.Grouping(base)
	for _, col := range scores {
		sub = table.Remove(sub, col)
	}
	wide, err := reshape.Widen(table.Flatten(sub), study.ColPhase, study.ColIntel)
	if err != nil {
		log.Fatalf("reshape: %s", err)
	}

	long, err := reshape.Lengthen(base, scores, "test", "score")
	if err != nil {
		log.Fatalf("reshape: %s", err)
	}

	summary, err := summarize.GroupMean(base, []string{study.ColSpeaker, study.ColPhase}, study.ColIntel)
	if err != nil {
		log.Fatalf("aggregate: %s", err)
	}

	if *flagTable {
		for _, v := range []struct {
			name string
			tab  table.Grouping
		}{{"base", base}, {"wide", wide}, {"long", long}, {"summary", summary}} {
			fmt.Printf("# %s\n", v.name)
			table.Fprint(os.Stdout, v.tab)
			fmt.Println()
		}
		return
	}

	dir := filepath.Dir(*flagData)
	if err := tableio.WriteCSV(filepath.Join(dir, "wide.csv"), wide); err != nil {
		log.Fatalf("write: %s", err)
	}
	if err := tableio.WriteCSV(filepath.Join(dir, "long.csv"), long); err != nil {
		log.Fatalf("write: %s", err)
	}

	if err := renderAll(*flagOut, base, long, summary, scores); err != nil {
		log.Fatalf("render: %s", err)
	}
}
