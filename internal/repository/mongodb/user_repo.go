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

// UserRepo implements UserRepository on the users collection.
type UserRepo struct{ c collection }

// NewUserRepo constructs a user repository.
func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{c: s.DB.Collection(usersCollection)}
}

// NewUserRepoWithCollection constructs a user repository over a custom collection.
func NewUserRepoWithCollection(c collection) *UserRepo { return &UserRepo{c: c} }

// FindByEmail loads a user document by exact email match.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.Document, error) {
	var doc model.Document
	err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc, nil
}

// Insert stores the record verbatim, no schema applied.
func (r *UserRepo) Insert(ctx context.Context, user model.Document) (model.InsertResult, error) {
	res, err := r.c.InsertOne(ctx, user)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("insert user: %w", err)
	}
	return model.InsertResult{InsertedID: res.InsertedID}, nil
}
