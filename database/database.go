// Package database provides a transactionally-scoped data access layer over
// named collections in a MongoDB database. Every operation runs inside its own
// session and transaction: commit on normal return, abort on error. Store
// errors propagate to the caller unmodified; nothing is retried.
package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SortOrder selects the direction of a sorted Find.
type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an already-connected client. The client is created once at process
// start and shared by every call; this layer never mutates it.
func New(client *mongo.Client, dbName string) *Database {
	return &Database{
		client: client,
		db:     client.Database(dbName),
	}
}

// GetCollection resolves a logical collection name to its store-native handle.
func (d *Database) GetCollection(name string) (*mongo.Collection, error) {
	if d == nil || d.db == nil {
		return nil, ErrNotConnected
	}
	return d.db.Collection(name), nil
}

// ExecuteWithSession runs operation inside a fresh session and transaction.
// The transaction is scoped to exactly the duration of the operation: it is
// committed when the operation returns nil and aborted when it returns an
// error, in which case the error propagates and no partial writes survive.
func (d *Database) ExecuteWithSession(ctx context.Context, operation func(mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	if d == nil || d.client == nil {
		return nil, ErrNotConnected
	}

	session, err := d.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	var result interface{}
	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return err
		}

		res, opErr := operation(sc)
		if opErr != nil {
			_ = session.AbortTransaction(sc)
			return opErr
		}

		result = res
		return session.CommitTransaction(sc)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InsertOne inserts a single document. The returned result carries the
// store-assigned identifier.
func (d *Database) InsertOne(ctx context.Context, collection string, document interface{}) (*mongo.InsertOneResult, error) {
	result, err := d.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := d.GetCollection(collection)
		if err != nil {
			return nil, err
		}
		return coll.InsertOne(sc, document)
	})
	if err != nil {
		return nil, err
	}
	return result.(*mongo.InsertOneResult), nil
}

// InsertMany inserts an ordered batch of documents. The batch is all-or-nothing:
// a failure on any element aborts the transaction and persists none of them.
func (d *Database) InsertMany(ctx context.Context, collection string, documents []interface{}) (*mongo.InsertManyResult, error) {
	result, err := d.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := d.GetCollection(collection)
		if err != nil {
			return nil, err
		}
		return coll.InsertMany(sc, documents, options.InsertMany().SetOrdered(true))
	})
	if err != nil {
		return nil, err
	}
	return result.(*mongo.InsertManyResult), nil
}

// FindOne decodes the first document matching filter into result. A miss is
// reported as ErrNotFound rather than a zero-valued result.
func (d *Database) FindOne(ctx context.Context, collection string, filter interface{}, result interface{}) error {
	_, err := d.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := d.GetCollection(collection)
		if err != nil {
			return nil, err
		}
		if err := coll.FindOne(sc, filter).Decode(result); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, nil
	})
	return err
}

// Find decodes every document matching filter into results, which must be a
// pointer to a slice. The full result set is materialized before returning.
// When sortKey is non-empty the results are sorted by it, ascending unless
// Descending is given.
func (d *Database) Find(ctx context.Context, collection string, filter interface{}, results interface{}, sortKey string, order SortOrder) error {
	_, err := d.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := d.GetCollection(collection)
		if err != nil {
			return nil, err
		}

		opts := options.Find()
		if sortKey != "" {
			if order == 0 {
				order = Ascending
			}
			opts.SetSort(bson.D{{Key: sortKey, Value: int(order)}})
		}

		cursor, err := coll.Find(sc, filter, opts)
		if err != nil {
			return nil, err
		}
		return nil, cursor.All(sc, results)
	})
	return err
}

// UpdateOne applies update to the first document matching filter.
func (d *Database) UpdateOne(ctx context.Context, collection string, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	result, err := d.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := d.GetCollection(collection)
		if err != nil {
			return nil, err
		}
		return coll.UpdateOne(sc, filter, update)
	})
	if err != nil {
		return nil, err
	}
	return result.(*mongo.UpdateResult), nil
}

// DeleteOne deletes the first document matching filter.
func (d *Database) DeleteOne(ctx context.Context, collection string, filter interface{}) (*mongo.DeleteResult, error) {
	result, err := d.ExecuteWithSession(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		coll, err := d.GetCollection(collection)
		if err != nil {
			return nil, err
		}
		return coll.DeleteOne(sc, filter)
	})
	if err != nil {
		return nil, err
	}
	return result.(*mongo.DeleteResult), nil
}
