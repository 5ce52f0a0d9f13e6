// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package util

import (
	"fmt"
	"regexp"
)

var credentialsRegex = regexp.MustCompile(`^(mongodb(?:\+srv)?://)[^/?]*@`)

// SanitizeURI masks the userinfo section of a connection string so it can
// be logged.
func SanitizeURI(uri string) string {
	return credentialsRegex.ReplaceAllString(uri, "${1}[**REDACTED**]@")
}

// Pluralize picks the singular or plural noun for n.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// ShortUsage returns the hint printed after a command line error.
func ShortUsage(tool string) string {
	return fmt.Sprintf("try '%v --help' for more information", tool)
}
