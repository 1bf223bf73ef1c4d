// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reshape converts tables between long and wide forms.
//
// Widen and Lengthen are pure functions: they never modify their
// input table and depend on nothing but their arguments. They follow
// the shapes of table.Pivot and table.Unpivot, but report bad input
// as errors rather than panicking, and Widen treats a duplicated key
// within a group as an error rather than inheriting a silent
// overwrite policy.
package reshape

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-intel/internal/tabutil"
)

// A ConflictError reports that Widen found two rows in the same
// group with the same key value. This indicates malformed input,
// such as a subject with two pretest rows.
type ConflictError struct {
	Col   string // the key column
	Key   string // the duplicated key value
	Group string // the group containing the duplicate
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate %s %q for %s", e.Col, e.Key, e.Group)
}

// Widen spreads the value column of t into one column per distinct
// value of the key column. Rows are grouped by every column other
// than key and value; each group produces one output row containing
// the group's columns followed by the spread value columns, named by
// the key values' labels.
//
// The spread columns appear in the key type's order when it has one
// (Phases orders pretest before posttest) and otherwise in order of
// first appearance. A group with no row for some key value gets NaN
// in that column if the value column holds float64, and the zero
// value otherwise. A group with two rows for the same key value is an
// error of type *ConflictError.
func Widen(t *table.Table, key, value string) (*table.Table, error) {
	keyCol, valCol := t.Column(key), t.Column(value)
	if keyCol == nil {
		return nil, fmt.Errorf("unknown column %q", key)
	}
	if valCol == nil {
		return nil, fmt.Errorf("unknown column %q", value)
	}
	var groupCols []string
	for _, col := range t.Columns() {
		if col != key && col != value {
			groupCols = append(groupCols, col)
		}
	}

	// Derive the spread column names from the distinct key values.
	keys := reflect.ValueOf(tabutil.Distinct(keyCol))
	keyIdx := make(map[interface{}]int, keys.Len())
	names := make([]string, keys.Len())
	for k := 0; k < keys.Len(); k++ {
		v := keys.Index(k).Interface()
		keyIdx[v] = k
		names[k] = tabutil.Label(v)
		for _, col := range groupCols {
			if names[k] == col {
				return nil, fmt.Errorf("%s value %q collides with column %q", key, names[k], col)
			}
		}
	}

	// Partition rows into groups in first-appearance order.
	// cells[g][k] holds the source row for group g and key k, or -1.
	groupOf := map[string]int{}
	var first []int
	var cells [][]int
	for i := 0; i < t.Len(); i++ {
		gk := tabutil.GroupKey(t, groupCols, i)
		g, ok := groupOf[gk]
		if !ok {
			g = len(first)
			groupOf[gk] = g
			first = append(first, i)
			row := make([]int, keys.Len())
			for k := range row {
				row[k] = -1
			}
			cells = append(cells, row)
		}
		k := keyIdx[tabutil.Cell(keyCol, i)]
		if cells[g][k] != -1 {
			return nil, &ConflictError{Col: key, Key: names[k], Group: describeRow(t, groupCols, i)}
		}
		cells[g][k] = i
	}

	var b table.Builder
	for _, col := range groupCols {
		b.Add(col, tabutil.Pick(t.MustColumn(col), first))
	}
	vv := reflect.ValueOf(valCol)
	isFloat := vv.Type().Elem().Kind() == reflect.Float64
	for k := 0; k < keys.Len(); k++ {
		out := reflect.MakeSlice(vv.Type(), len(first), len(first))
		for g := range first {
			if i := cells[g][k]; i >= 0 {
				out.Index(g).Set(vv.Index(i))
			} else if isFloat {
				out.Index(g).SetFloat(math.NaN())
			}
		}
		b.Add(names[k], out.Interface())
	}
	return b.Done(), nil
}

// Lengthen stacks the listed columns of t into two new columns: name
// receives the stacked column's name and value its value. Every
// other column is copied unchanged. Each input row produces
// len(cols) consecutive output rows, one per listed column in the
// listed order, so the output has exactly t.Len()*len(cols) rows in
// a deterministic order.
//
// The stacked columns must all have the same type.
func Lengthen(t *table.Table, cols []string, name, value string) (*table.Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns to stack")
	}
	if name == value {
		return nil, fmt.Errorf("name and value columns are both %q", name)
	}
	stacked := map[string]bool{}
	var typ reflect.Type
	for _, col := range cols {
		c := t.Column(col)
		if c == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
		if ct := reflect.TypeOf(c); typ == nil {
			typ = ct
		} else if typ != ct {
			return nil, fmt.Errorf("stacked columns have different types %s and %s", typ.Elem(), ct.Elem())
		}
		stacked[col] = true
	}

	k := len(cols)
	var b table.Builder
	for _, col := range t.Columns() {
		if !stacked[col] {
			if col == name || col == value {
				return nil, fmt.Errorf("output column %q collides with an input column", col)
			}
			b.Add(col, tabutil.Repeat(t.MustColumn(col), k))
		}
	}

	nameCol := make([]string, t.Len()*k)
	valOut := reflect.MakeSlice(typ, t.Len()*k, t.Len()*k)
	srcs := make([]reflect.Value, k)
	for j, col := range cols {
		srcs[j] = reflect.ValueOf(t.MustColumn(col))
	}
	for i := 0; i < t.Len(); i++ {
		for j, col := range cols {
			o := i*k + j
			nameCol[o] = col
			valOut.Index(o).Set(srcs[j].Index(i))
		}
	}
	b.Add(name, nameCol)
	b.Add(value, valOut.Interface())
	return b.Done(), nil
}

// describeRow renders row i's values in cols for error messages.
func describeRow(t *table.Table, cols []string, i int) string {
	if len(cols) == 0 {
		return "all rows"
	}
	parts := make([]string, len(cols))
	for j, col := range cols {
		parts[j] = fmt.Sprintf("%s=%v", col, tabutil.Cell(t.MustColumn(col), i))
	}
	return strings.Join(parts, " ")
}
