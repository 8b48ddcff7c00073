// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/todobook/todobook/internal/model"
)

// UserRepository provides lookup and verbatim insertion of user records.
type UserRepository interface {
	// FindByEmail loads the user document with the given email.
	// Returns errs.ErrNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (model.Document, error)
	// Insert stores the supplied record as-is and returns the assigned id.
	Insert(ctx context.Context, user model.Document) (model.InsertResult, error)
}
