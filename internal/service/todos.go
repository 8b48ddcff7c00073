package service

import (
	"context"

	"github.com/todobook/todobook/internal/errs"
	"github.com/todobook/todobook/internal/model"
	"github.com/todobook/todobook/internal/repository"
)

// StatusCompleted is the terminal task status set by MarkCompleted.
const StatusCompleted = "completed"

// TodoService defines owner-scoped todo operations. Every operation takes
// the verified claim email and rejects callers acting on someone else's
// behalf with errs.ErrForbidden.
type TodoService interface {
	// Create stores a new todo after clearing the previously flagged one.
	Create(ctx context.Context, claimEmail string, todo model.Document) (model.InsertResult, error)
	// List returns all todos owned by email, in insertion order.
	List(ctx context.Context, claimEmail, email string) ([]model.Document, error)
	// Get returns a single todo by id, or errs.ErrNotFound.
	Get(ctx context.Context, claimEmail, queryEmail, id string) (model.Document, error)
	// Delete removes a todo by id and returns the deletion count.
	Delete(ctx context.Context, claimEmail, queryEmail, id string) (model.DeleteResult, error)
	// Update merges the supplied fields into the record at id.
	Update(ctx context.Context, claimEmail, id string, fields model.Document) (model.UpdateResult, error)
	// MarkCompleted sets status to "completed" regardless of current state.
	MarkCompleted(ctx context.Context, claimEmail, queryEmail, id string) (model.UpdateResult, error)
}

type TodoServiceImpl struct {
	repo repository.TodoRepository
}

// NewTodoService constructs TodoService over the given repository.
func NewTodoService(repo repository.TodoRepository) *TodoServiceImpl {
	return &TodoServiceImpl{repo: repo}
}

// Create rejects todos claimed for another owner, then clears the
// previously flagged record before inserting the new one verbatim.
func (s *TodoServiceImpl) Create(ctx context.Context, claimEmail string, todo model.Document) (model.InsertResult, error) {
	if model.Email(todo) != claimEmail {
		return model.InsertResult{}, errs.ErrForbidden
	}
	if err := s.repo.ClearPreviousWorked(ctx); err != nil {
		return model.InsertResult{}, err
	}
	return s.repo.Insert(ctx, todo)
}

// List returns the todos of email; only the owner may ask.
func (s *TodoServiceImpl) List(ctx context.Context, claimEmail, email string) ([]model.Document, error) {
	if email != claimEmail {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListByEmail(ctx, email)
}

// Get checks the caller-supplied query email against the claim, not the
// stored record's owner; see DESIGN.md on this kept behavior.
func (s *TodoServiceImpl) Get(ctx context.Context, claimEmail, queryEmail, id string) (model.Document, error) {
	if queryEmail != claimEmail {
		return nil, errs.ErrForbidden
	}
	return s.repo.Get(ctx, id)
}

// Delete has the same query-email ownership check as Get.
func (s *TodoServiceImpl) Delete(ctx context.Context, claimEmail, queryEmail, id string) (model.DeleteResult, error) {
	if queryEmail != claimEmail {
		return model.DeleteResult{}, errs.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// Update rejects payloads claimed for another owner, clears the previously
// flagged record, then merges only the supplied fields.
func (s *TodoServiceImpl) Update(ctx context.Context, claimEmail, id string, fields model.Document) (model.UpdateResult, error) {
	if model.Email(fields) != claimEmail {
		return model.UpdateResult{}, errs.ErrForbidden
	}
	if err := s.repo.ClearPreviousWorked(ctx); err != nil {
		return model.UpdateResult{}, err
	}
	return s.repo.Merge(ctx, id, fields)
}

// MarkCompleted is idempotent: re-completing an already completed todo
// matches without modifying.
func (s *TodoServiceImpl) MarkCompleted(ctx context.Context, claimEmail, queryEmail, id string) (model.UpdateResult, error) {
	if queryEmail != claimEmail {
		return model.UpdateResult{}, errs.ErrForbidden
	}
	return s.repo.SetStatus(ctx, id, StatusCompleted)
}
