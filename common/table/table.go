// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package table loads comma-separated files with a header row into memory
// and answers simple questions about their contents.
package table

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Row holds the cells of one record, in header order.
type Row []string

// Table is an in-memory CSV file. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   []Row

	index map[string]int
}

// New builds a Table from a header and rows.
func New(header []string, rows []Row) *Table {
	t := &Table{Header: header, Rows: rows}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		// first occurrence wins for repeated column names
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
}

// Load reads the file or S3 object at path.
func Load(ctx context.Context, path string) (*Table, error) {
	in, err := Open(ctx, path)
	if err != nil {
		return nil, &SourceReadError{Path: path, Err: err}
	}
	defer in.Close()

	return Read(in, path)
}

// Read parses CSV from in. name identifies the source in errors.
func Read(in io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(newBomDiscardingReader(in))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SourceReadError{Path: name, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, parseError(name, err)
	}
	// the header sets the expected field count for every record
	reader.FieldsPerRecord = len(header)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(name, err)
		}
		rows = append(rows, record)
	}

	return New(header, rows), nil
}

func parseError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &SourceReadError{Path: name, Line: parseErr.Line, Err: parseErr.Err}
	}
	return &SourceReadError{Path: name, Err: err}
}

// HasColumn reports whether name is one of the header columns.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the cell of row in the named column, or "" if the table has no
// such column.
func (t *Table) Get(row Row, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowKey(row Row) string {
	var sb strings.Builder
	for i, cell := range row {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Quote(cell))
	}
	return sb.String()
}

// Deduplicate returns a table without the rows that exactly repeat an earlier
// row across every column. Cells compare as text, so "30" and "30.0" differ.
// Surviving rows keep their original order.
func (t *Table) Deduplicate() *Table {
	seen := mapset.NewThreadUnsafeSetWithSize[string](len(t.Rows))
	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if seen.Add(rowKey(row)) {
			rows = append(rows, row)
		}
	}
	return New(t.Header, rows)
}

// DuplicateCount is the number of rows Deduplicate would drop.
func (t *Table) DuplicateCount() int {
	return len(t.Rows) - len(t.Deduplicate().Rows)
}

// naValues are the cell spellings read as missing, matched exactly. They are
// the default NA markers of pandas.read_csv.
var naValues = mapset.NewThreadUnsafeSet(
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
)

// IsMissing reports whether cell counts as a missing value.
func IsMissing(cell string) bool {
	return naValues.Contains(cell)
}

// MissingCounts returns, for each column, how many rows hold a missing
// value (see IsMissing).
func (t *Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		if _, ok := counts[name]; !ok {
			counts[name] = 0
		}
		for _, row := range t.Rows {
			if IsMissing(row[i]) {
				counts[name]++
			}
		}
	}
	return counts
}
