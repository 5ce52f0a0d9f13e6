// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package mongoinspect summarizes a CSV file before it is migrated.
package mongoinspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/table"
	"github.com/medicaldb/admissions-tools/common/text"
	"github.com/medicaldb/admissions-tools/common/util"
	"github.com/mitchellh/go-wordwrap"
)

// Report is the summary of one file.
type Report struct {
	File       string
	Rows       int
	Columns    []string
	Missing    map[string]int
	Duplicates int
}

// Inspect loads the file at path and summarizes it.
func Inspect(ctx context.Context, path string) (Report, error) {
	tbl, err := table.Load(ctx, path)
	if err != nil {
		return Report{}, err
	}
	log.Logvf(log.DebugLow, "loaded %v rows from %v", len(tbl.Rows), path)

	return Report{
		File:       path,
		Rows:       len(tbl.Rows),
		Columns:    tbl.Header,
		Missing:    tbl.MissingCounts(),
		Duplicates: tbl.DuplicateCount(),
	}, nil
}

// Write prints the report. The column list is wrapped at width characters
// unless width is zero.
func (r Report) Write(w io.Writer, width uint) error {
	columns := strings.Join(r.Columns, ", ")
	if width > 0 {
		columns = wordwrap.WrapString(columns, width)
	}

	grid := &text.GridWriter{ColumnPadding: 2}
	for _, col := range r.Columns {
		grid.WriteCells(col, fmt.Sprint(r.Missing[col]))
		grid.EndRow()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "file loaded: %v\n", r.File)
	fmt.Fprintf(&sb, "number of rows: %v\n", r.Rows)
	fmt.Fprintf(&sb, "number of columns: %v\n", len(r.Columns))
	fmt.Fprintf(&sb, "\ncolumns:\n%v\n", columns)
	fmt.Fprintf(&sb, "\nmissing values per column:\n")
	grid.Flush(&sb)
	fmt.Fprintf(&sb, "\nnumber of duplicate rows: %v\n", r.Duplicates)

	return util.WriteAll(w, []byte(sb.String()))
}
