// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package password reads a database password from the terminal, or from
// standard input when it is not a terminal.
package password

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/medicaldb/admissions-tools/common/log"
	"golang.org/x/term"
)

// Prompt asks for the password of the given user and returns what was
// entered.
func Prompt(user string) (string, error) {
	fmt.Fprintf(os.Stderr, "Enter password for %s:", user)
	defer fmt.Fprintln(os.Stderr)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		log.Logv(log.DebugLow, "standard input is a terminal; reading password from terminal")
		pass, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(pass), nil
	}

	log.Logv(log.Always, "reading password from standard input")
	return readPassNonInteractively(os.Stdin)
}

// readPassNonInteractively reads a single line, without its terminator.
func readPassNonInteractively(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
