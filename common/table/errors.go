// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package table

import "fmt"

// SourceReadError reports that the tabular source could not be read or
// parsed. Line is the 1-based line of the offending record, or 0 when the
// failure is not tied to a record.
type SourceReadError struct {
	Path string
	Line int
	Err  error
}

func (e *SourceReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("error reading %v at line %v: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("error reading %v: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}
