// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package testtype gates tests on the kind of environment they need.
package testtype

import (
	"os"
	"testing"
)

const (
	// UnitTestType is for tests that need nothing but the test binary.
	// They run unless TOOLS_TESTING_UNIT is explicitly set to "false".
	UnitTestType = "TOOLS_TESTING_UNIT"

	// IntegrationTestType is for tests that need a running mongod.
	IntegrationTestType = "TOOLS_TESTING_INTEGRATION"
)

// HasTestType returns whether the given test type is enabled.
func HasTestType(testType string) bool {
	envVal := os.Getenv(testType)
	if testType == UnitTestType {
		return envVal != "false"
	}
	return envVal == "true"
}

// SkipUnlessTestType skips the current test unless the given test type is
// enabled.
func SkipUnlessTestType(t *testing.T, testType string) {
	if !HasTestType(testType) {
		t.SkipNow()
	}
}
