// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongomigrate

import (
	"fmt"
	"strings"

	"github.com/medicaldb/admissions-tools/common/table"
)

// SourceReadError reports that the CSV source could not be read or parsed.
type SourceReadError = table.SourceReadError

// SchemaValidationError lists the expected columns absent from the source.
type SchemaValidationError struct {
	Missing []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("missing required columns: %v", strings.Join(e.Missing, ", "))
}

// TypeConversionError reports a cell that could not be parsed into its
// document type. Row is the 1-based position among the deduplicated rows.
type TypeConversionError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("row %v: cannot convert %v value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *TypeConversionError) Unwrap() error {
	return e.Err
}

// StoreWriteError reports a failed store operation. Inserted is the number
// of documents that were written before the failure and remain in the
// collection.
type StoreWriteError struct {
	Op       string
	Inserted int
	Err      error
}

func (e *StoreWriteError) Error() string {
	if e.Op == opInsert {
		return fmt.Sprintf("%v failed after %v documents: %v", e.Op, e.Inserted, e.Err)
	}
	return fmt.Sprintf("%v failed: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// CountMismatchError reports that the stored document count differs from
// the number of deduplicated rows.
type CountMismatchError struct {
	Expected int
	Actual   int64
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("verification failed: expected %v documents, found %v", e.Expected, e.Actual)
}
