// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package testutil implements helpers shared by the integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/medicaldb/admissions-tools/common/db"
	"github.com/medicaldb/admissions-tools/common/options"
)

const uriEnvVar = "TOOLS_TESTING_MONGOD"

// GetToolOptions returns ToolOptions pointing at the test server: the
// TOOLS_TESTING_MONGOD connection string, or localhost on the test port.
func GetToolOptions() (*options.ToolOptions, error) {
	uri := os.Getenv(uriEnvVar)
	if uri == "" {
		uri = "mongodb://localhost:" + db.DefaultTestPort + "/"
	}

	toolOptions := options.New("admissions-tools-test", "", "", "")
	_, err := toolOptions.ParseArgs([]string{"--uri=" + uri})
	if err != nil {
		return nil, fmt.Errorf(
			"could not create toolOptions with %#q from the %#q env var: %w",
			uri,
			uriEnvVar,
			err,
		)
	}
	return toolOptions, nil
}

// GetBareSessionProvider returns a session provider connected to the test
// server.
func GetBareSessionProvider(ctx context.Context) (*db.SessionProvider, *options.ToolOptions, error) {
	toolOptions, err := GetToolOptions()
	if err != nil {
		return nil, nil, fmt.Errorf(
			"error getting tool options to create a bare session provider: %w",
			err,
		)
	}

	sessionProvider, err := db.NewSessionProvider(ctx, *toolOptions)
	if err != nil {
		return nil, nil, err
	}

	return sessionProvider, toolOptions, nil
}
