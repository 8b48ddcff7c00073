// Package service contains application services for authentication and todos.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/todobook/todobook/internal/errs"
	"github.com/todobook/todobook/internal/limiter"
	"github.com/todobook/todobook/internal/model"
	"github.com/todobook/todobook/internal/repository"
	"github.com/todobook/todobook/internal/token"
)

// AuthService defines token issuance and user registration.
type AuthService interface {
	// IssueToken signs caller-supplied claims, rate-limited per (email, ip).
	IssueToken(ctx context.Context, claims map[string]any, ip string) (string, error)
	// RegisterUser inserts the record once per email; duplicates are no-ops
	// that report existence.
	RegisterUser(ctx context.Context, user model.Document) (model.RegisterResult, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Service
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// IssueToken signs whatever claims the caller supplied. The endpoint behind
// this is unauthenticated, so issuance is throttled per (email, ip) instead.
func (s *AuthServiceImpl) IssueToken(ctx context.Context, claims map[string]any, ip string) (string, error) {
	email, _ := claims["email"].(string)
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", fmt.Errorf("issuance limiter: %w", err)
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	return s.tokens.Issue(claims)
}

// RegisterUser looks up the email first and inserts only when absent.
// A duplicate attempt succeeds with a null insertion marker.
func (s *AuthServiceImpl) RegisterUser(ctx context.Context, user model.Document) (model.RegisterResult, error) {
	email := model.Email(user)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return model.RegisterResult{Message: "user is already exist", InsertedID: nil}, nil
	case errors.Is(err, errs.ErrNotFound):
	default:
		return model.RegisterResult{}, fmt.Errorf("lookup user: %w", err)
	}

	res, err := s.users.Insert(ctx, user)
	if err != nil {
		return model.RegisterResult{}, err
	}
	return model.RegisterResult{InsertedID: res.InsertedID}, nil
}
