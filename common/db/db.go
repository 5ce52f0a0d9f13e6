// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package db implements the connection to MongoDB shared by the tools.
package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/options"
	"github.com/medicaldb/admissions-tools/common/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopt "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Default port for integration tests
const (
	DefaultTestPort = "33333"
)

// SessionProvider owns the client used by a tool for its whole run.
type SessionProvider struct {
	sync.Mutex

	// the master client used for operations
	client *mongo.Client
}

// GetSession returns a mongo.Client connected to the database server for
// which the session provider is configured.
func (sp *SessionProvider) GetSession() (*mongo.Client, error) {
	sp.Lock()
	defer sp.Unlock()

	if sp.client == nil {
		return nil, errors.New("SessionProvider already closed")
	}

	return sp.client, nil
}

// Close disconnects the client. It is safe to call more than once.
func (sp *SessionProvider) Close() {
	sp.Lock()
	defer sp.Unlock()
	if sp.client != nil {
		_ = sp.client.Disconnect(context.Background())
		sp.client = nil
	}
}

// DatabaseNames lists the databases visible to the connected user.
func (sp *SessionProvider) DatabaseNames(ctx context.Context) ([]string, error) {
	session, err := sp.GetSession()
	if err != nil {
		return nil, err
	}
	return session.ListDatabaseNames(ctx, bson.D{})
}

// DropDatabase drops a database.
func (sp *SessionProvider) DropDatabase(ctx context.Context, dbName string) error {
	session, err := sp.GetSession()
	if err != nil {
		return err
	}
	return session.Database(dbName).Drop(ctx)
}

// NewSessionProvider constructs a session provider, including a connected
// client that has answered a ping.
func NewSessionProvider(ctx context.Context, opts options.ToolOptions) (*SessionProvider, error) {
	clientopt, err := configureClient(opts)
	if err != nil {
		return nil, fmt.Errorf("error configuring the connector: %v", err)
	}
	log.Logvf(log.DebugLow, "connecting to %v", util.SanitizeURI(opts.URI.ConnectionString))

	client, err := mongo.Connect(ctx, clientopt)
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not connect to server: %v", err)
	}

	return &SessionProvider{client: client}, nil
}

// configureClient builds client options from the parsed connection string,
// with ToolOptions having precedence.
func configureClient(opts options.ToolOptions) (*mopt.ClientOptions, error) {
	if opts.URI == nil || opts.URI.ConnectionString == "" {
		// Tests construct options by hand without going through ParseArgs.
		if err := opts.NormalizeOptionsAndURI(); err != nil {
			return nil, err
		}
	}

	clientopt := mopt.Client().ApplyURI(opts.URI.ConnectionString)
	if err := clientopt.Validate(); err != nil {
		return nil, err
	}

	clientopt.SetAppName(opts.AppName)
	if opts.Connection != nil {
		clientopt.SetConnectTimeout(time.Duration(opts.Timeout) * time.Second)
		if opts.ServerSelectionTimeout > 0 {
			clientopt.SetServerSelectionTimeout(time.Duration(opts.ServerSelectionTimeout) * time.Second)
		}
	}

	cs := opts.URI.ConnString
	if opts.WriteConcern != nil {
		clientopt.SetWriteConcern(opts.WriteConcern)
	} else if !cs.WNumberSet && cs.WString == "" && !cs.JSet {
		// If no write concern was specified, default to majority
		clientopt.SetWriteConcern(writeconcern.Majority())
	}

	if opts.URI.Password != "" && clientopt.Auth != nil {
		clientopt.Auth.Password = opts.URI.Password
		clientopt.Auth.PasswordSet = true
	}

	return clientopt, nil
}
