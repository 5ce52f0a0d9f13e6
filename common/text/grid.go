// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package text provides helpers for laying out plain-text reports.
package text

import (
	"fmt"
	"io"
	"strings"
)

// GridWriter buffers cells row by row and writes them out right-aligned in
// columns as wide as their widest cell.
type GridWriter struct {
	ColumnPadding int
	MinWidth      int
	Grid          [][]string
	CurrentRow    int
	colWidths     []int
}

// WriteCell appends a cell to the current row.
func (gw *GridWriter) WriteCell(data string) {
	for len(gw.Grid) <= gw.CurrentRow {
		gw.Grid = append(gw.Grid, []string{})
	}
	gw.Grid[gw.CurrentRow] = append(gw.Grid[gw.CurrentRow], data)
}

// WriteCells appends several cells to the current row.
func (gw *GridWriter) WriteCells(data ...string) {
	for _, s := range data {
		gw.WriteCell(s)
	}
}

// EndRow moves to the next row.
func (gw *GridWriter) EndRow() {
	gw.CurrentRow++
	if gw.CurrentRow >= len(gw.Grid) {
		gw.Grid = append(gw.Grid, []string{})
	}
}

// Reset discards the buffered cells, keeping column widths.
func (gw *GridWriter) Reset() {
	gw.Grid = [][]string{}
	gw.CurrentRow = 0
}

// updateWidths widens the remembered columns where colWidths is larger.
func (gw *GridWriter) updateWidths(colWidths []int) {
	if gw.colWidths == nil {
		gw.colWidths = make([]int, len(colWidths))
		copy(gw.colWidths, colWidths)
	}
	for i, cw := range colWidths {
		if i >= len(gw.colWidths) {
			gw.colWidths = append(gw.colWidths, cw)
		} else if cw > gw.colWidths[i] {
			gw.colWidths[i] = cw
		}
	}
}

func (gw *GridWriter) calculateWidths() []int {
	colWidths := []int{}
	for _, row := range gw.Grid {
		for i, cell := range row {
			width := len(cell)
			if width < gw.MinWidth {
				width = gw.MinWidth
			}
			if i >= len(colWidths) {
				colWidths = append(colWidths, width)
			} else if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}
	return colWidths
}

// Flush writes the grid with one line per row.
func (gw *GridWriter) Flush(w io.Writer) {
	gw.write(w, "\n")
}

// FlushRows writes the grid without separating rows.
func (gw *GridWriter) FlushRows(w io.Writer) {
	gw.write(w, "")
}

func (gw *GridWriter) write(w io.Writer, rowSeparator string) {
	gw.updateWidths(gw.calculateWidths())
	padding := strings.Repeat(" ", gw.ColumnPadding)
	for _, row := range gw.Grid {
		if len(row) == 0 {
			continue
		}
		for j, cell := range row {
			fmt.Fprintf(w, "%*s", gw.colWidths[j], cell)
			if j < len(row)-1 {
				fmt.Fprint(w, padding)
			}
		}
		fmt.Fprint(w, rowSeparator)
	}
}
