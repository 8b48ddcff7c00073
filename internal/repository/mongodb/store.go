// Package mongodb contains MongoDB implementations of repository interfaces.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names used by the repositories.
const (
	usersCollection = "users"
	todosCollection = "todos"
)

// collection is a minimal abstraction over *mongo.Collection, used by
// repositories. Tests substitute canned results through it.
type collection interface {
	// InsertOne stores a single document.
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	// FindOne executes a query expected to match at most one document.
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	// Find executes a query and returns a cursor over the matches.
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	// UpdateOne applies an update to the first matching document.
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
	// DeleteOne removes the first matching document.
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
}

// Store wraps a connected client and the application database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials MongoDB with Stable API v1 and verifies the connection
// with a ping before handing the store out.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	api := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerAPIOptions(api))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Store{Client: client, DB: client.Database(dbName)}, nil
}

// Close releases the underlying connections.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
