package repository

import (
	"context"

	"github.com/todobook/todobook/internal/model"
)

// TodoRepository provides access to todo records. Ids are opaque strings
// assigned by the store; an id that parses to nothing behaves like a miss
// (zero counts, empty results), never like an error.
type TodoRepository interface {
	// Insert stores the supplied record as-is.
	Insert(ctx context.Context, todo model.Document) (model.InsertResult, error)

	// ListByEmail returns all todos owned by email, in natural store order.
	ListByEmail(ctx context.Context, email string) ([]model.Document, error)

	// Get returns a single todo by id, or errs.ErrNotFound.
	Get(ctx context.Context, id string) (model.Document, error)

	// Delete removes a todo by id and reports how many records went away.
	Delete(ctx context.Context, id string) (model.DeleteResult, error)

	// Merge overwrites only the supplied fields of the record at id,
	// preserving absent ones.
	Merge(ctx context.Context, id string, fields model.Document) (model.UpdateResult, error)

	// SetStatus sets the status field unconditionally.
	SetStatus(ctx context.Context, id, status string) (model.UpdateResult, error)

	// ClearPreviousWorked flips the currently flagged todo to false, if any.
	// The lookup is not scoped by owner; see DESIGN.md.
	ClearPreviousWorked(ctx context.Context) error
}
