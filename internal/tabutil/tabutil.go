// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabutil provides reflection helpers for manipulating the
// generic column slices of go-gg tables.
package tabutil

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Cell returns element i of column col.
func Cell(col table.Slice, i int) interface{} {
	return reflect.ValueOf(col).Index(i).Interface()
}

// Pick returns a new slice with the same type as col containing the
// elements of col at rows, in order.
func Pick(col table.Slice, rows []int) table.Slice {
	rv := reflect.ValueOf(col)
	out := reflect.MakeSlice(rv.Type(), len(rows), len(rows))
	for i, row := range rows {
		out.Index(i).Set(rv.Index(row))
	}
	return out.Interface()
}

// Repeat returns a new slice with the same type as col in which each
// element of col appears n times consecutively.
func Repeat(col table.Slice, n int) table.Slice {
	rv := reflect.ValueOf(col)
	out := reflect.MakeSlice(rv.Type(), rv.Len()*n, rv.Len()*n)
	for i := 0; i < rv.Len(); i++ {
		for j := 0; j < n; j++ {
			out.Index(i*n + j).Set(rv.Index(i))
		}
	}
	return out.Interface()
}

// Distinct returns the distinct values of col. If col's type has an
// ordering (either a natural order or sort.Interface, like
// study.Phases), the result is in that order; otherwise it is in
// order of first appearance.
func Distinct(col table.Slice) table.Slice {
	out := slice.Nub(col)
	if slice.CanSort(out) {
		slice.Sort(out)
	}
	return out
}

// GroupKey returns a string identifying row i of t by the values in
// cols. Two rows have equal keys exactly when they agree on every
// column in cols.
func GroupKey(t *table.Table, cols []string, i int) string {
	var sb strings.Builder
	for _, col := range cols {
		fmt.Fprintf(&sb, "%q=%v\x1f", col, Cell(t.MustColumn(col), i))
	}
	return sb.String()
}

// Floats converts a numeric column to []float64. Unlike
// slice.Convert, it reports non-numeric columns as an error rather
// than panicking.
func Floats(col table.Slice) ([]float64, error) {
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, fmt.Errorf("column type %T is not numeric", col)
	}
	var xs []float64
	slice.Convert(&xs, col)
	return xs, nil
}

// Label returns the display form of a table cell value, as used for
// derived column names and CSV fields. NaN becomes "NA" so written
// tables round-trip with the loader.
func Label(v interface{}) string {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) {
			return "NA"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return Label(float64(v))
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	}
	return fmt.Sprint(v)
}
