// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package text

import (
	"bytes"
	"testing"

	"github.com/medicaldb/admissions-tools/common/testtype"
	"github.com/stretchr/testify/assert"
)

// missingValues fills gw with one row per column name and its missing count.
func missingValues(gw *GridWriter) {
	gw.Reset()
	for _, row := range [][]string{
		{"Name", "0"},
		{"Blood Type", "12"},
		{"Billing Amount", "3"},
	} {
		gw.WriteCells(row...)
		gw.EndRow()
	}
}

func TestGridWidths(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	t.Run("remembered widths only grow", func(t *testing.T) {
		gw := GridWriter{}
		assert.Nil(t, gw.colWidths)

		gw.updateWidths([]int{14, 2})
		assert.Equal(t, []int{14, 2}, gw.colWidths)

		gw.updateWidths([]int{4, 1})
		assert.Equal(t, []int{14, 2}, gw.colWidths)

		gw.updateWidths([]int{10, 5, 3})
		assert.Equal(t, []int{14, 5, 3}, gw.colWidths)
	})

	t.Run("widths follow the widest cell", func(t *testing.T) {
		gw := GridWriter{}
		missingValues(&gw)
		assert.Equal(t, []int{14, 2}, gw.calculateWidths())

		gw.WriteCells("Test Results", "1500", "extra")
		gw.EndRow()
		assert.Equal(t, []int{14, 4, 5}, gw.calculateWidths())

		gw.MinWidth = 6
		assert.Equal(t, []int{14, 6, 6}, gw.calculateWidths())
	})
}

func TestGridFlush(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	t.Run("right aligned without padding", func(t *testing.T) {
		gw := &GridWriter{}
		missingValues(gw)
		var buf bytes.Buffer
		gw.Flush(&buf)
		assert.Equal(t, "          Name 0\n    Blood Type12\nBilling Amount 3\n", buf.String())
	})

	t.Run("padding separates columns", func(t *testing.T) {
		gw := &GridWriter{ColumnPadding: 2}
		missingValues(gw)
		var buf bytes.Buffer
		gw.Flush(&buf)
		assert.Equal(t,
			"          Name   0\n"+
				"    Blood Type  12\n"+
				"Billing Amount   3\n",
			buf.String())
	})

	t.Run("widths persist across resets", func(t *testing.T) {
		gw := &GridWriter{ColumnPadding: 1}
		missingValues(gw)
		gw.Flush(&bytes.Buffer{})

		gw.Reset()
		gw.WriteCells("Age", "7")
		gw.EndRow()
		var buf bytes.Buffer
		gw.Flush(&buf)
		assert.Equal(t, "           Age  7\n", buf.String())
	})

	t.Run("rows without separators", func(t *testing.T) {
		gw := &GridWriter{ColumnPadding: 1}
		missingValues(gw)
		var buf bytes.Buffer
		gw.FlushRows(&buf)
		assert.Equal(t, "          Name  0    Blood Type 12Billing Amount  3", buf.String())
	})
}
