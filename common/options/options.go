// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package options implements command-line options that are used by all of
// the admissions tools.
package options

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/password"
	"github.com/medicaldb/admissions-tools/common/util"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultURI is used when neither --uri, the config file nor the
	// environment name a server: a local, unauthenticated mongod.
	DefaultURI = "mongodb://localhost:27017/"

	// URIEnvVar is the environment variable consulted for the connection
	// string.
	URIEnvVar = "MONGO_URI"
)

const sensitiveURIWarning = "WARNING: On some systems, a password provided directly in a connection string " +
	"or using --uri may be visible to system status programs such as `ps` that may be " +
	"invoked by other users. Consider omitting the password to provide it via stdin, " +
	"or using the --config option to specify a configuration file with the password."

// ToolOptions holds the options shared by every tool: help, version,
// verbosity, the connection string and the fixed target namespace.
type ToolOptions struct {

	// The name of the tool
	AppName string

	// The version of the tool
	VersionStr string

	// The git commit reference of the tool
	GitCommit string

	// Sub-option types
	*General
	*Verbosity
	*URI
	*Connection
	*Namespace

	// WriteConcern, if specified, overrides the client default
	WriteConcern *writeconcern.WriteConcern

	parser *flags.Parser
}

// Namespace is the database and collection a tool works on. It is not
// exposed as flags.
type Namespace struct {
	DB         string
	Collection string
}

func (ns Namespace) String() string {
	return ns.DB + "." + ns.Collection
}

// Struct holding generic options
type General struct {
	Help       bool   `long:"help" description:"print usage"`
	Version    bool   `long:"version" description:"print the tool version and exit"`
	ConfigPath string `long:"config" value-name:"<filename>" description:"path to a YAML configuration file holding 'uri' and/or 'password'"`
}

// Struct holding verbosity-related options
type Verbosity struct {
	SetVerbosity    func(string) `short:"v" long:"verbose" value-name:"<level>" description:"more detailed log output (include multiple times for more verbosity, e.g. -vvvvv, or specify a numeric value, e.g. --verbose=N)" optional:"true" optional-value:""`
	Quiet           bool         `long:"quiet" description:"hide all log output"`
	VLevel          int          `no-flag:"true"`
	VerbosityParsed bool         `no-flag:"true"`
}

func (v Verbosity) Level() int {
	return v.VLevel
}

func (v Verbosity) IsQuiet() bool {
	return v.Quiet
}

// URI holds the connection string and the password, which may come from the
// config file or a prompt rather than the string itself.
type URI struct {
	ConnectionString string `long:"uri" value-name:"mongodb-uri" description:"mongodb uri connection string (defaults to $MONGO_URI, then mongodb://localhost:27017/)"`

	ConnString connstring.ConnString `no-flag:"true"`
	Password   string                `no-flag:"true"`
}

// Struct holding connection-related options
type Connection struct {
	Timeout                int `long:"dialTimeout" default:"3" hidden:"true" description:"dial timeout in seconds"`
	ServerSelectionTimeout int `long:"serverSelectionTimeout" default:"30" hidden:"true" description:"seconds to wait for server selection"`
}

// ExtraOptions is implemented by tool-specific option groups.
type ExtraOptions interface {
	// Name specifying what type of options these are
	Name() string
}

func parseVal(val string) int {
	idx := strings.Index(val, "=")
	ret, err := strconv.Atoi(val[idx+1:])
	if err != nil {
		panic(fmt.Errorf("value was not a valid integer: %v", err))
	}
	return ret
}

// New returns a ToolOptions with every shared group registered.
func New(appName, versionStr, gitCommit, usageStr string) *ToolOptions {
	opts := &ToolOptions{
		AppName:    appName,
		VersionStr: versionStr,
		GitCommit:  gitCommit,

		General:    &General{},
		Verbosity:  &Verbosity{},
		URI:        &URI{},
		Connection: &Connection{},
		Namespace:  &Namespace{},
		parser: flags.NewNamedParser(
			fmt.Sprintf("%v %v", appName, usageStr), flags.None),
	}

	// Called when -v or --verbose is parsed
	opts.SetVerbosity = func(val string) {
		// Reset verbosity level when we call ParseArgs again and see the verbosity flag
		if opts.VLevel != 0 && opts.VerbosityParsed {
			opts.VerbosityParsed = false
			opts.VLevel = 0
		}

		if i, err := strconv.Atoi(val); err == nil {
			opts.VLevel = opts.VLevel + i // -v=N or --verbose=N
		} else if matched, _ := regexp.MatchString(`^v+$`, val); matched {
			opts.VLevel = opts.VLevel + len(val) + 1 // Handles the -vvv cases
		} else if matched, _ := regexp.MatchString(`^v+=[0-9]$`, val); matched {
			opts.VLevel = parseVal(val) // I.e. -vv=3
		} else if val == "" {
			opts.VLevel = opts.VLevel + 1 // Increment for every occurrence of flag
		} else {
			log.Logvf(log.Always, "Invalid verbosity value given")
			os.Exit(util.ExitBadOptions)
		}
	}

	if _, err := opts.parser.AddGroup("general options", "", opts.General); err != nil {
		panic(fmt.Errorf("couldn't register general options: %v", err))
	}
	if _, err := opts.parser.AddGroup("verbosity options", "", opts.Verbosity); err != nil {
		panic(fmt.Errorf("couldn't register verbosity options: %v", err))
	}
	if _, err := opts.parser.AddGroup("uri options", "", opts.URI); err != nil {
		panic(fmt.Errorf("couldn't register URI options: %v", err))
	}
	if _, err := opts.parser.AddGroup("connection options", "", opts.Connection); err != nil {
		panic(fmt.Errorf("couldn't register connection options: %v", err))
	}
	return opts
}

// PrintHelp prints the usage message for the tool to stdout. Returns whether
// or not the help flag is specified.
func (opts *ToolOptions) PrintHelp(force bool) bool {
	if opts.Help || force {
		opts.parser.WriteHelp(os.Stdout)
	}
	return opts.Help
}

// PrintVersion prints the tool version to stdout. Returns whether or not the
// version flag is specified.
func (opts *ToolOptions) PrintVersion() bool {
	if opts.Version {
		fmt.Printf("%v version: %v\n", opts.AppName, opts.VersionStr)
		fmt.Printf("git version: %v\n", opts.GitCommit)
		fmt.Printf("Go version: %v\n", runtime.Version())
		fmt.Printf("   os: %v\n", runtime.GOOS)
		fmt.Printf("   arch: %v\n", runtime.GOARCH)
	}
	return opts.Version
}

// AddOptions registers an additional options group to this instance
func (opts *ToolOptions) AddOptions(extraOpts ExtraOptions) {
	_, err := opts.parser.AddGroup(extraOpts.Name()+" options", "", extraOpts)
	if err != nil {
		panic(fmt.Sprintf("error setting command line options for %v: %v",
			extraOpts.Name(), err))
	}
}

func (opts *ToolOptions) CallArgParser(args []string) ([]string, error) {
	args, err := opts.parser.ParseArgs(args)
	if err != nil {
		return []string{}, err
	}

	// Set VerbosityParsed flag to make sure we reset verbosity level when we call ParseArgs again
	if opts.VLevel != 0 && !opts.VerbosityParsed {
		opts.VerbosityParsed = true
	}

	return args, nil
}

// ParseArgs parses a potential config file followed by the command line args, overriding
// any values in the config file. Returns any extra args not accounted for by parsing,
// as well as an error if the parsing returns an error.
func (opts *ToolOptions) ParseArgs(args []string) ([]string, error) {
	args, err := opts.ParseFlags(args)
	if err != nil {
		return []string{}, err
	}

	if err = opts.NormalizeOptionsAndURI(); err != nil {
		return []string{}, err
	}
	return args, nil
}

// ParseFlags is ParseArgs without resolving the connection string, for runs
// that never connect. NormalizeOptionsAndURI must be called before
// connecting.
func (opts *ToolOptions) ParseFlags(args []string) ([]string, error) {
	LogSensitiveOptionWarnings(args)

	if err := opts.ParseConfigFile(args); err != nil {
		return []string{}, err
	}

	return opts.CallArgParser(args)
}

// LogSensitiveOptionWarnings logs a warning when a connection string with a
// password appears on the command line.
func LogSensitiveOptionWarnings(args []string) {
	tempOpts := New("", "", "", "")
	tempOpts.parser.Options |= flags.IgnoreUnknown
	if _, err := tempOpts.CallArgParser(args); err != nil {
		return
	}

	if uri := tempOpts.URI.ConnectionString; uri != "" {
		if cs, err := connstring.Parse(uri); err == nil && cs.Password != "" {
			log.Logv(log.Always, sensitiveURIWarning)
		}
	}
}

// ParseConfigFile looks for a --config option among args. If found, the
// named YAML file is read for 'uri' and 'password' values.
func (opts *ToolOptions) ParseConfigFile(args []string) error {
	// Get config file path from the arguments, if specified.
	_, err := opts.CallArgParser(args)
	if err != nil {
		return err
	}

	if opts.General.ConfigPath == "" {
		return nil
	}

	configBytes, err := os.ReadFile(opts.General.ConfigPath)
	if err != nil {
		return errors.Wrapf(err, "error opening file with --config")
	}

	var config struct {
		Password         string `yaml:"password"`
		ConnectionString string `yaml:"uri"`
	}
	err = yaml.UnmarshalStrict(configBytes, &config)
	if err != nil {
		return errors.Wrapf(err, "error parsing config file %s", opts.General.ConfigPath)
	}

	if config.ConnectionString != "" {
		opts.URI.ConnectionString = config.ConnectionString
	}
	opts.URI.Password = config.Password
	return nil
}

// DefaultConnectionString returns $MONGO_URI, or DefaultURI when it is unset.
func DefaultConnectionString() string {
	if uri := os.Getenv(URIEnvVar); uri != "" {
		return uri
	}
	return DefaultURI
}

// NormalizeOptionsAndURI fills in the connection string when none was given,
// parses it, and asks for a password when the string names a user without
// one.
func (opts *ToolOptions) NormalizeOptionsAndURI() error {
	if opts.URI == nil {
		opts.URI = &URI{}
	}
	if opts.URI.ConnectionString == "" {
		opts.URI.ConnectionString = DefaultConnectionString()
	}

	cs, err := connstring.ParseAndValidate(opts.URI.ConnectionString)
	if err != nil {
		return errors.Wrapf(err, "error parsing uri %v", util.SanitizeURI(opts.URI.ConnectionString))
	}
	opts.URI.ConnString = *cs

	if opts.shouldAskForPassword() {
		pass, err := password.Prompt(cs.Username)
		if err != nil {
			return fmt.Errorf("error reading password: %v", err)
		}
		opts.URI.Password = pass
	}
	return nil
}

func (opts *ToolOptions) shouldAskForPassword() bool {
	cs := opts.URI.ConnString
	if cs.Username == "" || cs.PasswordSet || opts.URI.Password != "" {
		return false
	}
	switch cs.AuthMechanism {
	case "MONGODB-X509", "GSSAPI", "MONGODB-AWS":
		return false
	}
	return true
}
