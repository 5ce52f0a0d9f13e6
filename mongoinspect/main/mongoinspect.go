// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Main package for the mongoinspect tool.
package main

import (
	"context"
	"os"

	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/util"
	"github.com/medicaldb/admissions-tools/mongoinspect"
)

var (
	VersionStr = "built-without-version-string"
	GitCommit  = "build-without-git-commit"
)

func main() {
	opts, err := mongoinspect.ParseOptions(os.Args[1:], VersionStr, GitCommit)
	if err != nil {
		log.Logvf(log.Always, "error parsing command line options: %v", err)
		log.Logv(log.Always, util.ShortUsage("mongoinspect"))
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

	report, err := mongoinspect.Inspect(context.Background(), opts.File)
	if err != nil {
		log.Logvf(log.Always, "Failed: %v", err)
		os.Exit(util.ExitFailure)
	}

	if err := report.Write(os.Stdout, opts.Width); err != nil {
		log.Logvf(log.Always, "error writing report: %v", err)
		os.Exit(util.ExitFailure)
	}
}
