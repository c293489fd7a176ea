package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"familyledger/internal/domain/user"
	"familyledger/pkg/id"

	"golang.org/x/crypto/bcrypt"
)

type Usecase struct {
	users    user.Repository
	sessions SessionStore
	ttl      time.Duration

	dummyOnce sync.Once
	dummy     []byte
}

func NewUsecase(users user.Repository, sessions SessionStore, ttl time.Duration) *Usecase {
	return &Usecase{users: users, sessions: sessions, ttl: ttl}
}

// Authenticate never tells an unknown user apart from a wrong password or
// an inactive account: all three return user.ErrInvalidCredentials.
func (u *Usecase) Authenticate(ctx context.Context, username, password string) (user.Principal, error) {
	found, err := u.users.GetByUsername(ctx, username)
	if errors.Is(err, user.ErrNotFound) {
		// burn the same bcrypt work as a real check
		_ = bcrypt.CompareHashAndPassword(u.dummyHash(), []byte(password))
		return user.Principal{}, user.ErrInvalidCredentials
	}
	if err != nil {
		return user.Principal{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return user.Principal{}, user.ErrInvalidCredentials
	}
	if !found.IsActive {
		return user.Principal{}, user.ErrInvalidCredentials
	}
	return found.Principal(), nil
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*SessionDTO, error) {
	p, err := u.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	token := id.NewToken()
	if err := u.sessions.Save(ctx, token, p, u.ttl); err != nil {
		return nil, err
	}
	return &SessionDTO{Token: token, ExpiresAt: time.Now().UTC().Add(u.ttl), User: p}, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	return u.sessions.Delete(ctx, token)
}

// Resolve turns a bearer token into the request principal. The user row is
// re-read so deactivated accounts lose access immediately.
func (u *Usecase) Resolve(ctx context.Context, token string) (user.Principal, error) {
	if token == "" {
		return user.Principal{}, user.ErrUnauthenticated
	}
	p, err := u.sessions.Get(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}
	found, err := u.users.GetByID(ctx, p.ID)
	if errors.Is(err, user.ErrNotFound) || (err == nil && !found.IsActive) {
		_ = u.sessions.Delete(ctx, token)
		return user.Principal{}, user.ErrUnauthenticated
	}
	if err != nil {
		return user.Principal{}, err
	}
	return found.Principal(), nil
}

func (u *Usecase) dummyHash() []byte {
	u.dummyOnce.Do(func() {
		u.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return u.dummy
}
