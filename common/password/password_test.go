// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package password

import (
	"strings"
	"testing"

	"github.com/medicaldb/admissions-tools/common/testtype"
	"github.com/stretchr/testify/require"
)

func TestPasswordFromNonTerminal(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	for input, want := range map[string]string{
		"rootpass":            "rootpass",
		"rootpass\n":          "rootpass",
		"rootpass\r\nignored": "rootpass",
		"":                    "",
	} {
		pass, err := readPassNonInteractively(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, want, pass, "input %q", input)
	}
}
