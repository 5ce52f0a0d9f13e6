// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package db

import (
	"context"
	"testing"

	"github.com/medicaldb/admissions-tools/common/options"
	"github.com/medicaldb/admissions-tools/common/testtype"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestBufferedBulkInserterInserts(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.IntegrationTestType)

	ctx := context.Background()
	var bufBulk *BufferedBulkInserter

	Convey("With a valid session", t, func() {
		opts := options.ToolOptions{
			URI:        &options.URI{ConnectionString: "mongodb://localhost:" + DefaultTestPort + "/"},
			Connection: &options.Connection{Timeout: 3},
		}
		So(opts.NormalizeOptionsAndURI(), ShouldBeNil)
		provider, err := NewSessionProvider(ctx, opts)
		So(err, ShouldBeNil)
		So(provider, ShouldNotBeNil)
		session, err := provider.GetSession()
		So(err, ShouldBeNil)

		Convey("using a test collection and a doc limit of 3", func() {
			testCol := session.Database("tools-test").Collection("bulk1")
			bufBulk = NewOrderedBufferedBulkInserter(testCol, 3)

			Convey("inserting 10 documents flushes 3 times with one doc still buffered", func() {
				flushCount := 0
				for i := 0; i < 10; i++ {
					result, err := bufBulk.Insert(ctx, bson.D{{Key: "i", Value: i}})
					So(err, ShouldBeNil)
					if result != nil {
						flushCount++
						So(result.InsertedCount, ShouldEqual, 3)
					}
				}
				So(flushCount, ShouldEqual, 3)
				So(bufBulk.docCount, ShouldEqual, 1)
				So(bufBulk.Inserted(), ShouldEqual, 9)

				result, err := bufBulk.Flush(ctx)
				So(err, ShouldBeNil)
				So(result.InsertedCount, ShouldEqual, 1)
				So(bufBulk.Inserted(), ShouldEqual, 10)

				count, err := testCol.CountDocuments(ctx, bson.D{})
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 10)
			})
		})

		Convey("an ordered batch stops at the first duplicate key", func() {
			testCol := session.Database("tools-test").Collection("bulk2")
			bufBulk = NewOrderedBufferedBulkInserter(testCol, 10)

			for _, id := range []int{1, 2, 2, 3} {
				_, err := bufBulk.Insert(ctx, bson.D{{Key: "_id", Value: id}})
				So(err, ShouldBeNil)
			}
			_, err := bufBulk.Flush(ctx)
			So(err, ShouldNotBeNil)
			_, isBulkErr := err.(mongo.BulkWriteException)
			So(isBulkErr, ShouldBeTrue)
			So(bufBulk.Inserted(), ShouldEqual, 2)
		})

		Convey("using a byte limit of 1 flushes every document", func() {
			testCol := session.Database("tools-test").Collection("bulk3")
			bufBulk = NewOrderedBufferedBulkInserter(testCol, 1000)
			bufBulk.byteLimit = 1

			for i := 0; i < 5; i++ {
				result, err := bufBulk.Insert(ctx, bson.D{{Key: "foo", Value: "bar"}})
				So(err, ShouldBeNil)
				So(result, ShouldNotBeNil)
				So(result.InsertedCount, ShouldEqual, 1)
			}
		})

		Reset(func() {
			So(provider.DropDatabase(ctx, "tools-test"), ShouldBeNil)
			provider.Close()
		})
	})
}

func TestNewOrderedBufferedBulkInserterLimits(t *testing.T) {
	testtype.SkipUnlessTestType(t, testtype.UnitTestType)

	Convey("Doc limits outside (0, 1000] fall back to the default", t, func() {
		So(NewOrderedBufferedBulkInserter(nil, 0).docLimit, ShouldEqual, DefaultDocLimit)
		So(NewOrderedBufferedBulkInserter(nil, 5000).docLimit, ShouldEqual, DefaultDocLimit)
		So(NewOrderedBufferedBulkInserter(nil, 10).docLimit, ShouldEqual, 10)
		So(*NewOrderedBufferedBulkInserter(nil, 10).bulkWriteOpts.Ordered, ShouldBeTrue)
	})

	Convey("Flushing an empty buffer is a no-op", t, func() {
		bb := NewOrderedBufferedBulkInserter(nil, 10)
		result, err := bb.Flush(context.Background())
		So(err, ShouldBeNil)
		So(result, ShouldBeNil)
	})
}
