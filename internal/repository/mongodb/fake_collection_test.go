package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// fakeCollection satisfies the collection interface with canned results,
// recording the filters and updates it was handed.
type fakeCollection struct {
	insertRes   *mongo.InsertOneResult
	insertErr   error
	insertedDoc any

	findOneDoc    any // nil means no match
	findOneErr    error
	findOneCalls  int
	lastFindOneIn any

	findDocs   []any
	findErr    error
	lastFindIn any

	updateRes    *mongo.UpdateResult
	updateErr    error
	updateCalls  int
	lastUpdateIn any
	lastUpdate   any

	deleteRes    *mongo.DeleteResult
	deleteErr    error
	deleteCalls  int
	lastDeleteIn any
}

var _ collection = (*fakeCollection)(nil)

func (f *fakeCollection) InsertOne(_ context.Context, document any, _ ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error) {
	f.insertedDoc = document
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertRes != nil {
		return f.insertRes, nil
	}
	return &mongo.InsertOneResult{InsertedID: bson.NewObjectID()}, nil
}

func (f *fakeCollection) FindOne(_ context.Context, filter any, _ ...options.Lister[options.FindOneOptions]) *mongo.SingleResult {
	f.findOneCalls++
	f.lastFindOneIn = filter
	if f.findOneErr != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, f.findOneErr, nil)
	}
	if f.findOneDoc == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(f.findOneDoc, nil, nil)
}

func (f *fakeCollection) Find(_ context.Context, filter any, _ ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	f.lastFindIn = filter
	if f.findErr != nil {
		return nil, f.findErr
	}
	docs := f.findDocs
	if docs == nil {
		docs = []any{}
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakeCollection) UpdateOne(_ context.Context, filter any, update any, _ ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error) {
	f.updateCalls++
	f.lastUpdateIn = filter
	f.lastUpdate = update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateRes != nil {
		return f.updateRes, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCollection) DeleteOne(_ context.Context, filter any, _ ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error) {
	f.deleteCalls++
	f.lastDeleteIn = filter
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	if f.deleteRes != nil {
		return f.deleteRes, nil
	}
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}
