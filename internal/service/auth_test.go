package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/todobook/todobook/internal/errs"
	"github.com/todobook/todobook/internal/limiter"
	"github.com/todobook/todobook/internal/model"
	"github.com/todobook/todobook/internal/repository"
	"github.com/todobook/todobook/internal/token"
)

type fakeUsers struct {
	byEmail map[string]model.Document

	findErr   error
	insertErr error

	insertCalls int
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (model.Document, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Insert(_ context.Context, user model.Document) (model.InsertResult, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return model.InsertResult{}, f.insertErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]model.Document{}
	}
	f.byEmail[model.Email(user)] = user
	return model.InsertResult{InsertedID: "id-" + model.Email(user)}, nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	calls     int
	lastEmail string
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(_ context.Context, email string, _ []byte) (bool, time.Duration, error) {
	l.calls++
	l.lastEmail = email
	return l.allowOK, 0, l.allowErr
}

func newAuth(users *fakeUsers, lim *fakeLimiter) *AuthServiceImpl {
	return NewAuthService(users, token.New([]byte("test-key"), time.Hour), lim)
}

func TestAuth_IssueToken_RoundTrip(t *testing.T) {
	t.Parallel()
	lim := &fakeLimiter{allowOK: true}
	s := newAuth(&fakeUsers{}, lim)

	raw, err := s.IssueToken(context.Background(), map[string]any{"email": "a@x.com"}, "1.2.3.4")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := token.New([]byte("test-key"), time.Hour).Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if token.Email(claims) != "a@x.com" {
		t.Fatalf("claims did not round-trip: %v", claims)
	}
	if lim.calls != 1 || lim.lastEmail != "a@x.com" {
		t.Fatalf("limiter not consulted: calls=%d email=%q", lim.calls, lim.lastEmail)
	}
}

func TestAuth_IssueToken_RateLimited(t *testing.T) {
	t.Parallel()
	s := newAuth(&fakeUsers{}, &fakeLimiter{allowOK: false})

	_, err := s.IssueToken(context.Background(), map[string]any{"email": "a@x.com"}, "1.2.3.4")
	if !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}
}

func TestAuth_IssueToken_LimiterErrorPropagates(t *testing.T) {
	t.Parallel()
	s := newAuth(&fakeUsers{}, &fakeLimiter{allowErr: errors.New("db boom")})

	if _, err := s.IssueToken(context.Background(), map[string]any{"email": "a@x.com"}, "1.2.3.4"); err == nil {
		t.Fatalf("want limiter error")
	}
}

func TestAuth_RegisterUser_IdempotentPerEmail(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{}
	s := newAuth(users, &fakeLimiter{allowOK: true})
	ctx := context.Background()

	first, err := s.RegisterUser(ctx, model.Document{"email": "a@x.com", "plan": "free"})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if first.InsertedID == nil {
		t.Fatalf("first register must report an id")
	}

	second, err := s.RegisterUser(ctx, model.Document{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("duplicate register must not error: %v", err)
	}
	if second.InsertedID != nil || second.Message == "" {
		t.Fatalf("duplicate register: id=%v message=%q", second.InsertedID, second.Message)
	}
	if users.insertCalls != 1 || len(users.byEmail) != 1 {
		t.Fatalf("store must hold exactly one user: inserts=%d users=%d", users.insertCalls, len(users.byEmail))
	}
}

func TestAuth_RegisterUser_LookupErrorPropagates(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{findErr: errors.New("db boom")}
	s := newAuth(users, &fakeLimiter{allowOK: true})

	if _, err := s.RegisterUser(context.Background(), model.Document{"email": "a@x.com"}); err == nil {
		t.Fatalf("want lookup error")
	}
	if users.insertCalls != 0 {
		t.Fatalf("must not insert after failed lookup")
	}
}
