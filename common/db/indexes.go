// Copyright (C) MongoDB, Inc. 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexDocument holds information about a collection's index.
type IndexDocument struct {
	Options bson.M `bson:",inline"`
	Key     bson.D `bson:"key"`
}

// Name returns the index name recorded in the index spec.
func (doc IndexDocument) Name() string {
	name, _ := doc.Options["name"].(string)
	return name
}

// AscendingIndex returns the model for a non-unique ascending index on a
// single, possibly dotted, field. The server names it "<field>_1".
func AscendingIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(field + "_1"),
	}
}

// ListIndexes returns the specs of every index on the collection.
func ListIndexes(ctx context.Context, coll *mongo.Collection) ([]IndexDocument, error) {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing indexes on %v: %v", coll.Name(), err)
	}
	var indexes []IndexDocument
	if err := cursor.All(ctx, &indexes); err != nil {
		return nil, fmt.Errorf("error decoding indexes on %v: %v", coll.Name(), err)
	}
	return indexes, nil
}
