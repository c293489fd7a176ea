package user

import (
	"context"
	"errors"
	"strings"

	"familyledger/internal/domain/user"
	"familyledger/pkg/id"

	"golang.org/x/crypto/bcrypt"
)

type Usecase struct {
	users  user.Repository
	policy user.PasswordPolicy
	cost   int
}

// NewUsecase hashes passwords with bcrypt at cost; 0 means bcrypt.DefaultCost.
func NewUsecase(users user.Repository, policy user.PasswordPolicy, cost int) *Usecase {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Usecase{users: users, policy: policy, cost: cost}
}

func (u *Usecase) Create(ctx context.Context, actor user.Principal, in CreateUserInput) (*UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	created, err := u.create(ctx, in, &actor.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(created), nil
}

func (u *Usecase) create(ctx context.Context, in CreateUserInput, createdBy *uint64) (*user.User, error) {
	if err := user.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := u.policy.Check(in.Password); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, user.ErrEmptyDisplayName
	}
	role := in.Role
	if role == "" {
		role = user.RoleClient
	}
	if !role.Valid() {
		return nil, user.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, err
	}
	out := &user.User{
		UserID:       id.NewID32(),
		Username:     in.Username,
		DisplayName:  name,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedBy:    createdBy,
	}
	if err := u.users.Create(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bootstrap creates the first administrator when username is still free.
// It reports whether a user was created.
func (u *Usecase) Bootstrap(ctx context.Context, username, password, displayName string) (bool, error) {
	_, err := u.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, user.ErrNotFound):
		return false, err
	}
	if displayName == "" {
		displayName = username
	}
	_, err = u.create(ctx, CreateUserInput{
		Username:    username,
		Password:    password,
		DisplayName: displayName,
		Role:        user.RoleAdmin,
	}, nil)
	if errors.Is(err, user.ErrDuplicateUsername) {
		// another instance won the race
		return false, nil
	}
	return err == nil, err
}

func (u *Usecase) List(ctx context.Context, actor user.Principal) ([]UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	rows, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Get returns any user to an admin, and only themselves to a client.
func (u *Usecase) Get(ctx context.Context, actor user.Principal, userID string) (*UserDTO, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, user.ErrForbidden
	}
	found, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(found), nil
}

func (u *Usecase) SetActive(ctx context.Context, actor user.Principal, userID string, active bool) (*UserDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	found, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if found.ID == actor.ID && !active {
		return nil, user.ErrSelfDeactivation
	}
	if err := u.users.SetActive(ctx, found.ID, active); err != nil {
		return nil, err
	}
	found.IsActive = active
	return toDTO(found), nil
}
