// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package mongomigrate loads the hospital admissions CSV file into a MongoDB
// collection as nested documents.
package mongomigrate

import (
	"context"

	"github.com/medicaldb/admissions-tools/common/log"
	"github.com/medicaldb/admissions-tools/common/table"
	"github.com/medicaldb/admissions-tools/common/util"
	"github.com/pkg/errors"
)

// Result summarizes a migration run.
type Result struct {
	// SourceRows is the number of data rows read from the file.
	SourceRows int
	// DedupedRows is the number of rows left after removing duplicates.
	DedupedRows int
	// Inserted is the number of documents written.
	Inserted int
	// Indexes holds the index names found on the collection after the run.
	Indexes []string
	// Count is the document count read back from the collection.
	Count int64
}

// MongoMigrate is a container for the user-specified options and the store
// used for running mongomigrate.
type MongoMigrate struct {
	Options Options

	// Store is the target collection. It may be nil for a dry run.
	Store Store
}

// New returns a migrator that writes through store.
func New(opts Options, store Store) *MongoMigrate {
	return &MongoMigrate{Options: opts, Store: store}
}

// Run performs the migration: load, validate, deduplicate, reset the
// collection, transform, insert, index and verify. The first failure aborts
// the remaining steps and nothing is rolled back.
func (mm *MongoMigrate) Run(ctx context.Context) (Result, error) {
	var result Result

	tbl, err := mm.load(ctx)
	if err != nil {
		return result, err
	}
	result.SourceRows = len(tbl.Rows)

	if err := ValidateColumns(tbl.Header, ExpectedColumns); err != nil {
		return result, err
	}
	log.Logvf(log.Info, "all %v required columns present", len(ExpectedColumns))

	deduped := tbl.Deduplicate()
	result.DedupedRows = len(deduped.Rows)
	removed := result.SourceRows - result.DedupedRows
	log.Logvf(log.Always, "source rows: %v, after deduplication: %v (%v %v removed)",
		result.SourceRows, result.DedupedRows, removed, util.Pluralize(removed, "duplicate", "duplicates"))

	if mm.Options.DryRun {
		docs, err := TransformAll(deduped)
		if err != nil {
			return result, err
		}
		log.Logvf(log.Always, "dry run: %v %v would be inserted",
			len(docs), util.Pluralize(len(docs), "document", "documents"))
		return result, nil
	}

	if mm.Store == nil {
		return result, errors.New("no store configured")
	}

	if err := mm.Store.Reset(ctx); err != nil {
		return result, &StoreWriteError{Op: opReset, Err: err}
	}
	log.Logvf(log.Always, "cleared %v", mm.Options.Namespace)

	docs, err := TransformAll(deduped)
	if err != nil {
		return result, err
	}
	log.Logvf(log.Info, "built %v %v", len(docs), util.Pluralize(len(docs), "document", "documents"))

	inserted, err := mm.Store.InsertAll(ctx, docs)
	result.Inserted = inserted
	if err != nil {
		return result, &StoreWriteError{Op: opInsert, Inserted: inserted, Err: err}
	}
	log.Logvf(log.Always, "inserted %v %v", inserted, util.Pluralize(inserted, "document", "documents"))

	created, err := mm.Store.EnsureIndexes(ctx, IndexedFields)
	if err != nil {
		return result, &StoreWriteError{Op: opIndexes, Inserted: inserted, Err: err}
	}
	log.Logvf(log.Info, "ensured indexes: %v", created)

	result.Indexes, err = mm.Store.IndexNames(ctx)
	if err != nil {
		return result, &StoreWriteError{Op: opList, Inserted: inserted, Err: err}
	}
	log.Logvf(log.Always, "indexes on %v: %v", mm.Options.Namespace, result.Indexes)

	result.Count, err = mm.verify(ctx, result.DedupedRows)
	if err != nil {
		return result, err
	}
	return result, nil
}

func (mm *MongoMigrate) load(ctx context.Context) (*table.Table, error) {
	log.Logvf(log.Info, "reading %v", mm.Options.File)
	tbl, err := table.Load(ctx, mm.Options.File)
	if err != nil {
		return nil, err
	}
	log.Logvf(log.Always, "loaded %v %v from %v",
		len(tbl.Rows), util.Pluralize(len(tbl.Rows), "row", "rows"), mm.Options.File)
	return tbl, nil
}

// verify compares the stored document count with expected.
func (mm *MongoMigrate) verify(ctx context.Context, expected int) (int64, error) {
	count, err := mm.Store.Count(ctx)
	if err != nil {
		return 0, &StoreWriteError{Op: opCount, Err: err}
	}
	if count != int64(expected) {
		return count, &CountMismatchError{Expected: expected, Actual: count}
	}
	return count, nil
}
