package usermock

import (
	"context"

	"familyledger/internal/domain/user"
)

var _ user.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
// Unset lookups return user.ErrNotFound.
type Repo struct {
	CreateFn        func(ctx context.Context, u *user.User) error
	GetByIDFn       func(ctx context.Context, id uint64) (*user.User, error)
	GetByUserIDFn   func(ctx context.Context, userID string) (*user.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	ListFn          func(ctx context.Context) ([]user.User, error)
	SetActiveFn     func(ctx context.Context, id uint64, active bool) error
}

func (m *Repo) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, user.ErrNotFound
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, user.ErrNotFound
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, user.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]user.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) SetActive(ctx context.Context, id uint64, active bool) error {
	if m.SetActiveFn != nil {
		return m.SetActiveFn(ctx, id, active)
	}
	return nil
}
