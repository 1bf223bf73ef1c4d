// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summarize computes group-wise summary tables.
package summarize

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-intel/internal/tabutil"
)

// An EmptyGroupError reports a group whose value column held no
// non-missing values, so its mean is undefined.
type EmptyGroupError struct {
	Col   string // the value column
	Group string // the offending group
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no %s values for %s", e.Col, e.Group)
}

// GroupMean partitions the rows of t by the tuple of values in
// groupCols and computes the arithmetic mean of the value column
// within each partition. NaN values are ignored: each mean divides
// by the count of non-missing values. The result has the group
// columns plus a "mean "+value column, one row per distinct group
// tuple in order of first appearance, which is deterministic for a
// given input.
//
// The value column must be numeric. A group with no non-missing
// values is an error of type *EmptyGroupError; a NaN mean never
// propagates silently.
func GroupMean(t *table.Table, groupCols []string, value string) (*table.Table, error) {
	for _, col := range groupCols {
		if t.Column(col) == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		if col == "mean "+value {
			return nil, fmt.Errorf("output column %q collides with a group column", col)
		}
	}
	valCol := t.Column(value)
	if valCol == nil {
		return nil, fmt.Errorf("unknown column %q", value)
	}
	xs, err := tabutil.Floats(valCol)
	if err != nil {
		return nil, fmt.Errorf("column %q: %s", value, err)
	}

	// Partition rows in first-appearance order.
	groupOf := map[string]int{}
	var first []int
	var groups [][]float64
	for i := 0; i < t.Len(); i++ {
		gk := tabutil.GroupKey(t, groupCols, i)
		g, ok := groupOf[gk]
		if !ok {
			g = len(first)
			groupOf[gk] = g
			first = append(first, i)
			groups = append(groups, nil)
		}
		if !math.IsNaN(xs[i]) {
			groups[g] = append(groups[g], xs[i])
		}
	}

	means := make([]float64, len(groups))
	for g, vals := range groups {
		if len(vals) == 0 {
			return nil, &EmptyGroupError{Col: value, Group: describeRow(t, groupCols, first[g])}
		}
		means[g] = stats.Mean(vals)
	}

	var b table.Builder
	for _, col := range groupCols {
		b.Add(col, tabutil.Pick(t.MustColumn(col), first))
	}
	b.Add("mean "+value, means)
	return b.Done(), nil
}

func describeRow(t *table.Table, cols []string, i int) string {
	if len(cols) == 0 {
		return "all rows"
	}
	s := ""
	for j, col := range cols {
		if j > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%v", col, tabutil.Cell(t.MustColumn(col), i))
	}
	return s
}
