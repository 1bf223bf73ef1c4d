// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tableio writes derived tables to disk.
package tableio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-intel/internal/tabutil"
)

// WriteCSV writes t to path as a CSV file with a header row. NaN
// values are written as "NA", so tables written by WriteCSV load
// back with study.Load's typing.
//
// The write is atomic: WriteCSV writes a temporary file in path's
// directory and renames it into place, so a failed write never
// leaves a partially-written file at path.
func WriteCSV(path string, t *table.Table) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer func() {
		if f != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := csv.NewWriter(f)
	cols := t.Columns()
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	rec := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, col := range cols {
			rec[j] = tabutil.Label(tabutil.Cell(t.MustColumn(col), i))
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		f = nil
		return fmt.Errorf("writing %s: %w", path, err)
	}
	name := f.Name()
	f = nil
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
