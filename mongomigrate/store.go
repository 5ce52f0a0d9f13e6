// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongomigrate

import (
	"context"

	"github.com/ccoveille/go-safecast"
	"github.com/medicaldb/admissions-tools/common/db"
	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/options"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store operation names used in StoreWriteError.
const (
	opReset   = "reset collection"
	opInsert  = "bulk insert"
	opIndexes = "create indexes"
	opCount   = "count documents"
	opList    = "list indexes"
)

// Store is the target collection as seen by the Migrator.
type Store interface {
	// Reset deletes every document in the collection.
	Reset(ctx context.Context) error

	// InsertAll inserts docs in order, stopping at the first failure. It
	// returns how many documents were inserted, also on error.
	InsertAll(ctx context.Context, docs []Admission) (int, error)

	// EnsureIndexes creates an ascending index on each field and returns
	// the index names.
	EnsureIndexes(ctx context.Context, fields []string) ([]string, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int64, error)

	// IndexNames lists the names of every index on the collection.
	IndexNames(ctx context.Context) ([]string, error)
}

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
	docLimit   int
}

// NewMongoStore returns a store writing to ns through provider.
func NewMongoStore(provider *db.SessionProvider, ns options.Namespace) (*MongoStore, error) {
	session, err := provider.GetSession()
	if err != nil {
		return nil, err
	}
	return &MongoStore{
		collection: session.Database(ns.DB).Collection(ns.Collection),
		docLimit:   db.DefaultDocLimit,
	}, nil
}

func (s *MongoStore) Reset(ctx context.Context) error {
	result, err := s.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return errors.Wrapf(err, "error deleting documents from %v", s.namespace())
	}
	log.Logvf(log.DebugLow, "deleted %v existing documents", result.DeletedCount)
	return nil
}

func (s *MongoStore) InsertAll(ctx context.Context, docs []Admission) (int, error) {
	inserter := db.NewOrderedBufferedBulkInserter(s.collection, s.docLimit)
	for _, doc := range docs {
		if _, err := inserter.Insert(ctx, doc); err != nil {
			return s.inserted(inserter), errors.Wrapf(err, "error inserting into %v", s.namespace())
		}
	}
	if _, err := inserter.Flush(ctx); err != nil {
		return s.inserted(inserter), errors.Wrapf(err, "error inserting into %v", s.namespace())
	}
	return s.inserted(inserter), nil
}

func (s *MongoStore) inserted(inserter *db.BufferedBulkInserter) int {
	n, err := safecast.ToInt(inserter.Inserted())
	if err != nil {
		log.Logvf(log.Always, "inserted count out of range: %v", err)
	}
	return n
}

func (s *MongoStore) EnsureIndexes(ctx context.Context, fields []string) ([]string, error) {
	models := lo.Map(fields, func(field string, _ int) mongo.IndexModel {
		return db.AscendingIndex(field)
	})
	names, err := s.collection.Indexes().CreateMany(ctx, models)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating indexes on %v", s.namespace())
	}
	return names, nil
}

func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrapf(err, "error counting documents in %v", s.namespace())
	}
	return count, nil
}

func (s *MongoStore) namespace() string {
	return s.collection.Database().Name() + "." + s.collection.Name()
}

func (s *MongoStore) IndexNames(ctx context.Context) ([]string, error) {
	indexes, err := db.ListIndexes(ctx, s.collection)
	if err != nil {
		return nil, err
	}
	return lo.Map(indexes, func(idx db.IndexDocument, _ int) string {
		return idx.Name()
	}), nil
}
