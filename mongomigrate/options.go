// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongomigrate

import (
	"fmt"

	"github.com/medicaldb/admissions-tools/common/options"
)

// Usage describes how to invoke the tool.
var Usage = `<options>

Load the hospital admissions CSV file into MongoDB, replacing the contents of the
medicaldb.admissions collection, then index and verify it.

See http://docs.mongodb.com/database-tools for more information.`

const (
	// TargetDB is the database every run writes to.
	TargetDB = "medicaldb"
	// TargetCollection is the collection every run replaces.
	TargetCollection = "admissions"

	// DefaultFile is read when --file is not given.
	DefaultFile = "data/healthcare_dataset.csv"
)

// InputOptions defines the set of options for reading the source file and
// bounding the run.
type InputOptions struct {
	// File is the CSV source, a local path or an s3://bucket/key location.
	File string `long:"file" value-name:"<filename>" default:"data/healthcare_dataset.csv" description:"CSV file to migrate, a local path or s3://bucket/key"`

	// DryRun stops after the documents are built, without connecting.
	DryRun bool `long:"dryRun" description:"load, validate, deduplicate and transform the file without touching the database"`

	// Timeout bounds the whole run in seconds; zero means no limit.
	Timeout int `long:"timeout" value-name:"<seconds>" default:"0" description:"abort the migration after this many seconds (0 means no limit)"`
}

// Name returns a description of the InputOptions struct.
func (*InputOptions) Name() string {
	return "input"
}

// Options contains all the possible options used to configure mongomigrate.
type Options struct {
	*options.ToolOptions
	*InputOptions
	ParsedArgs []string
}

// ParseOptions reads command-line and config file options for mongomigrate.
func ParseOptions(rawArgs []string, versionStr, gitCommit string) (Options, error) {
	opts := options.New("mongomigrate", versionStr, gitCommit, Usage)
	opts.Namespace = &options.Namespace{DB: TargetDB, Collection: TargetCollection}

	inputOpts := &InputOptions{}
	opts.AddOptions(inputOpts)

	extraArgs, err := opts.ParseFlags(rawArgs)
	if err != nil {
		return Options{}, err
	}
	if len(extraArgs) != 0 {
		return Options{}, fmt.Errorf("too many positional arguments: %v", extraArgs)
	}
	if inputOpts.Timeout < 0 {
		return Options{}, fmt.Errorf("--timeout must not be negative, got %v", inputOpts.Timeout)
	}

	// a dry run never connects, so it must not prompt for a password
	if !inputOpts.DryRun {
		if err := opts.NormalizeOptionsAndURI(); err != nil {
			return Options{}, err
		}
	}

	return Options{opts, inputOpts, extraArgs}, nil
}
