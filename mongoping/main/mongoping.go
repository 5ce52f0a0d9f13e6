// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Main package for the mongoping tool.
package main

import (
	"context"
	"os"

	"github.com/medicaldb/admissions-tools/common/db"
	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/util"
	"github.com/medicaldb/admissions-tools/mongoping"
)

var (
	VersionStr = "built-without-version-string"
	GitCommit  = "build-without-git-commit"
)

func main() {
	opts, err := mongoping.ParseOptions(os.Args[1:], VersionStr, GitCommit)
	if err != nil {
		log.Logvf(log.Always, "error parsing command line options: %v", err)
		log.Logv(log.Always, util.ShortUsage("mongoping"))
		os.Exit(util.ExitBadOptions)
	}

	log.SetVerbosity(opts.Verbosity)

	// print help, if specified
	if opts.PrintHelp(false) {
		return
	}

	// print version, if specified
	if opts.PrintVersion() {
		return
	}

	ctx := context.Background()
	provider, err := db.NewSessionProvider(ctx, *opts)
	if err != nil {
		log.Logvf(log.Always, "Failed: error connecting to host: %v", err)
		os.Exit(util.ExitFailure)
	}
	defer provider.Close()
	log.Logvf(log.Always, "connected to: %v", util.SanitizeURI(opts.ConnectionString))

	status, err := mongoping.Check(ctx, provider)
	if err != nil {
		log.Logvf(log.Always, "Failed: %v", err)
		provider.Close()
		os.Exit(util.ExitFailure)
	}

	log.Logvf(log.Always, "databases: %v", status.Databases)
	if status.HasTarget {
		log.Logvf(log.Always, "database %v exists", mongoping.TargetDB)
	} else {
		log.Logvf(log.Always, "database %v does not exist yet", mongoping.TargetDB)
	}
}
