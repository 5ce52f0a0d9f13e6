// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package mongoping checks that the server is reachable and reports whether
// the admissions database exists.
package mongoping

import (
	"context"

	"github.com/medicaldb/admissions-tools/common/options"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Usage describes how to invoke the tool.
var Usage = `<options>

Connect to the server, list its databases and report whether the medicaldb
database exists.`

// TargetDB is the database whose presence is reported.
const TargetDB = "medicaldb"

// Lister lists database names.
type Lister interface {
	DatabaseNames(ctx context.Context) ([]string, error)
}

// Status is the outcome of a check.
type Status struct {
	Databases []string
	HasTarget bool
}

// Check lists the databases visible through lister.
func Check(ctx context.Context, lister Lister) (Status, error) {
	names, err := lister.DatabaseNames(ctx)
	if err != nil {
		return Status{}, errors.Wrap(err, "error listing databases")
	}
	return Status{
		Databases: names,
		HasTarget: lo.Contains(names, TargetDB),
	}, nil
}

// ParseOptions reads command-line and config file options for mongoping.
func ParseOptions(rawArgs []string, versionStr, gitCommit string) (*options.ToolOptions, error) {
	opts := options.New("mongoping", versionStr, gitCommit, Usage)
	opts.Namespace = &options.Namespace{DB: TargetDB}

	extraArgs, err := opts.ParseArgs(rawArgs)
	if err != nil {
		return nil, err
	}
	if len(extraArgs) != 0 {
		return nil, errors.Errorf("too many positional arguments: %v", extraArgs)
	}
	return opts, nil
}
