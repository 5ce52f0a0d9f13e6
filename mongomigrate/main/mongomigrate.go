// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Main package for the mongomigrate tool.
package main

import (
	"context"
	"os"
	"time"

	"github.com/medicaldb/admissions-tools/common/db"
	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/util"
	"github.com/medicaldb/admissions-tools/mongomigrate"
)

var (
	VersionStr = "built-without-version-string"
	GitCommit  = "build-without-git-commit"
)

// storeOpener connects the target store. The returned func releases it.
type storeOpener func(ctx context.Context, opts mongomigrate.Options) (mongomigrate.Store, func(), error)

func main() {
	os.Exit(runMain(os.Args[1:], connectStore))
}

// runMain parses args, runs the tool and returns the process exit code.
func runMain(args []string, openStore storeOpener) int {
	opts, err := mongomigrate.ParseOptions(args, VersionStr, GitCommit)
	if err != nil {
		log.Logvf(log.Always, "error parsing command line options: %v", err)
		log.Logv(log.Always, util.ShortUsage("mongomigrate"))
		return util.ExitBadOptions
	}

	log.SetVerbosity(opts.Verbosity)

	// print help, if specified
	if opts.PrintHelp(false) {
		return util.ExitClean
	}

	// print version, if specified
	if opts.PrintVersion() {
		return util.ExitClean
	}

	return run(opts, openStore)
}

func connectStore(ctx context.Context, opts mongomigrate.Options) (mongomigrate.Store, func(), error) {
	provider, err := db.NewSessionProvider(ctx, *opts.ToolOptions)
	if err != nil {
		return nil, nil, err
	}
	log.Logvf(log.Always, "connected to: %v", util.SanitizeURI(opts.ConnectionString))

	store, err := mongomigrate.NewMongoStore(provider, *opts.Namespace)
	if err != nil {
		provider.Close()
		return nil, nil, err
	}
	return store, provider.Close, nil
}

func run(opts mongomigrate.Options, openStore storeOpener) int {
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.Timeout)*time.Second)
		defer cancel()
	}

	var store mongomigrate.Store
	if !opts.DryRun {
		s, closeStore, err := openStore(ctx, opts)
		if err != nil {
			log.Logvf(log.Always, "error connecting to host: %v", err)
			return util.ExitFailure
		}
		defer closeStore()
		store = s
	}

	result, err := mongomigrate.New(opts, store).Run(ctx)
	if err != nil {
		log.Logvf(log.Always, "Failed: %v", err)
		return util.ExitFailure
	}

	if opts.DryRun {
		log.Logvf(log.Always, "dry run completed: %v %v", result.DedupedRows,
			util.Pluralize(result.DedupedRows, "document", "documents"))
		return util.ExitClean
	}
	log.Logvf(log.Always, "migration completed and verified: %v documents", result.Count)
	return util.ExitClean
}
