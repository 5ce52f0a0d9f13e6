// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package util

import (
	"bytes"
	"io"
)

// WriteAll writes the whole buffer to writer.
func WriteAll(writer io.Writer, buffer []byte) error {
	_, err := io.Copy(writer, bytes.NewReader(buffer))

	return err
}
