// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package study loads listener intelligibility study data.
//
// A study file is a CSV file with a header row. It must have columns
// "subject", "speaker", "phase", and "intelligibility"; every other
// column is taken to be a cognitive test standard score. Each subject
// appears on two rows, one per phase, with the same subject and
// speaker values.
package study

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// Column names fixed by the study file schema.
const (
	ColSubject = "subject"
	ColSpeaker = "speaker"
	ColPhase   = "phase"
	ColIntel   = "intelligibility"
)

// A ParseError reports a malformed row or field in a study file.
type ParseError struct {
	Path string // file being parsed, or "" if parsing a reader
	Line int    // 1-based line number
	Err  error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "study data"
	}
	return fmt.Sprintf("%s:%d: %s", path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the study file at path into a table. Column types follow
// the schema: subject is int, speaker is string, phase is
// study.Phases, and all remaining columns are float64. Empty fields
// and "NA" in numeric columns load as NaN.
//
// If path does not exist, the returned error satisfies
// errors.Is(err, fs.ErrNotExist). A row whose field count does not
// match the header, or a field that cannot be parsed, returns a
// *ParseError.
func Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading study data: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if pe, ok := err.(*ParseError); ok {
		pe.Path = path
	}
	return t, err
}

// Parse reads study data from r. See Load.
func Parse(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("missing header row")}
	} else if err != nil {
		return nil, csvError(err)
	}
	seen := map[string]bool{}
	for _, col := range header {
		if seen[col] {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("duplicate column %q", col)}
		}
		seen[col] = true
	}
	for _, col := range []string{ColSubject, ColSpeaker, ColPhase, ColIntel} {
		if !seen[col] {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("missing column %q", col)}
		}
	}

	// Read all records. csv.Reader enforces that every row has the
	// header's field count.
	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(err)
		}
		records = append(records, rec)
	}

	// Type each column.
	var b table.Builder
	for j, col := range header {
		var colErr error
		cell := func(i int) string { return records[i][j] }
		fail := func(i int, err error) {
			if colErr == nil {
				colErr = &ParseError{Line: i + 2, Err: fmt.Errorf("column %q: %s", col, err)}
			}
		}

		switch col {
		case ColSubject:
			vals := make([]int, len(records))
			for i := range records {
				v, err := strconv.Atoi(cell(i))
				if err != nil {
					fail(i, fmt.Errorf("bad subject ID %q", cell(i)))
				}
				vals[i] = v
			}
			b.Add(col, vals)

		case ColSpeaker:
			vals := make([]string, len(records))
			for i := range records {
				vals[i] = cell(i)
			}
			b.Add(col, vals)

		case ColPhase:
			vals := make(Phases, len(records))
			for i := range records {
				v, err := ParsePhase(cell(i))
				if err != nil {
					fail(i, err)
				}
				vals[i] = v
			}
			b.Add(col, vals)

		default:
			// Intelligibility and test scores.
			vals := make([]float64, len(records))
			for i := range records {
				switch s := cell(i); s {
				case "", "NA":
					vals[i] = math.NaN()
				default:
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						fail(i, fmt.Errorf("bad value %q", s))
					}
					vals[i] = v
				}
			}
			b.Add(col, vals)
		}

		if colErr != nil {
			return nil, colErr
		}
	}
	return b.Done(), nil
}

// ScoreColumns returns the cognitive test score columns of a loaded
// study table, in header order.
func ScoreColumns(t *table.Table) []string {
	var cols []string
	for _, col := range t.Columns() {
		switch col {
		case ColSubject, ColSpeaker, ColPhase, ColIntel:
		default:
			cols = append(cols, col)
		}
	}
	return cols
}

func csvError(err error) error {
	if ce, ok := err.(*csv.ParseError); ok {
		return &ParseError{Line: ce.Line, Err: ce.Err}
	}
	return &ParseError{Err: err}
}
