package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/todobook/todobook/internal/errs"
	"github.com/todobook/todobook/internal/model"
)

// TodoRepo implements TodoRepository on the todos collection.
type TodoRepo struct{ c collection }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(s *Store) *TodoRepo {
	return &TodoRepo{c: s.DB.Collection(todosCollection)}
}

// NewTodoRepoWithCollection constructs a todo repository over a custom collection.
func NewTodoRepoWithCollection(c collection) *TodoRepo { return &TodoRepo{c: c} }

// Insert stores the record verbatim, including whatever previousWorked
// value the caller supplied.
func (r *TodoRepo) Insert(ctx context.Context, todo model.Document) (model.InsertResult, error) {
	res, err := r.c.InsertOne(ctx, todo)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("insert todo: %w", err)
	}
	return model.InsertResult{InsertedID: res.InsertedID}, nil
}

// ListByEmail returns the owner's todos in natural store order.
func (r *TodoRepo) ListByEmail(ctx context.Context, email string) ([]model.Document, error) {
	cur, err := r.c.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	docs := []model.Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return docs, nil
}

// Get returns a single todo by id.
func (r *TodoRepo) Get(ctx context.Context, id string) (model.Document, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, errs.ErrNotFound
	}
	var doc model.Document
	err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return doc, nil
}

// Delete removes a todo by id. Unknown and malformed ids both report a
// zero deleted count.
func (r *TodoRepo) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	oid, ok := parseID(id)
	if !ok {
		return model.DeleteResult{}, nil
	}
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("delete todo: %w", err)
	}
	return model.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// Merge overwrites only the supplied fields at id via $set; absent fields
// are preserved. The _id field is stripped so the update cannot rename
// the document.
func (r *TodoRepo) Merge(ctx context.Context, id string, fields model.Document) (model.UpdateResult, error) {
	oid, ok := parseID(id)
	if !ok {
		return model.UpdateResult{}, nil
	}
	set := model.Document{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return model.UpdateResult{}, nil
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("update todo: %w", err)
	}
	return model.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// SetStatus sets status unconditionally, independent of current state.
func (r *TodoRepo) SetStatus(ctx context.Context, id, status string) (model.UpdateResult, error) {
	oid, ok := parseID(id)
	if !ok {
		return model.UpdateResult{}, nil
	}
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("set status: %w", err)
	}
	return model.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// ClearPreviousWorked flips the flagged todo to false as a single atomic
// find-and-update. The filter is deliberately not scoped by owner to keep
// the existing API behavior; see DESIGN.md.
func (r *TodoRepo) ClearPreviousWorked(ctx context.Context) error {
	_, err := r.c.UpdateOne(ctx,
		bson.M{"previousWorked": true},
		bson.M{"$set": bson.M{"previousWorked": false}},
	)
	if err != nil {
		return fmt.Errorf("clear previousWorked: %w", err)
	}
	return nil
}

// parseID converts an opaque id string to an ObjectID. Malformed ids are
// treated as ids that match nothing.
func parseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}
