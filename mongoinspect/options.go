// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongoinspect

import (
	"fmt"

	"github.com/medicaldb/admissions-tools/common/options"
)

// Usage describes how to invoke the tool.
var Usage = `<options>

Print a summary of the admissions CSV file: its size, its columns, the missing
values in each column and the number of duplicate rows. The database is not
contacted.`

// InputOptions defines the file to inspect.
type InputOptions struct {
	File string `long:"file" value-name:"<filename>" default:"data/healthcare_dataset.csv" description:"CSV file to inspect, a local path or s3://bucket/key"`

	// Width wraps the column list; zero disables wrapping.
	Width uint `long:"width" value-name:"<chars>" default:"80" description:"wrap the column list at this width (0 disables wrapping)"`
}

// Name returns a description of the InputOptions struct.
func (*InputOptions) Name() string {
	return "input"
}

// Options contains all the possible options used to configure mongoinspect.
type Options struct {
	*options.ToolOptions
	*InputOptions
}

// ParseOptions reads the command line for mongoinspect. The connection
// string is never resolved since no connection is made.
func ParseOptions(rawArgs []string, versionStr, gitCommit string) (Options, error) {
	opts := options.New("mongoinspect", versionStr, gitCommit, Usage)

	inputOpts := &InputOptions{}
	opts.AddOptions(inputOpts)

	extraArgs, err := opts.CallArgParser(rawArgs)
	if err != nil {
		return Options{}, err
	}
	if len(extraArgs) != 0 {
		return Options{}, fmt.Errorf("too many positional arguments: %v", extraArgs)
	}

	return Options{opts, inputOpts}, nil
}
