package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"familyledger/internal/adapter/middleware"
	"familyledger/internal/domain/loan"
	"familyledger/internal/domain/uow"
	"familyledger/internal/domain/user"
	"familyledger/internal/testutil/loanmock"
	"familyledger/internal/testutil/movementmock"
	"familyledger/internal/testutil/uowmock"
	"familyledger/internal/testutil/usermock"
	"familyledger/internal/usecase/auth"
	"familyledger/internal/usecase/forgiveness"
	ledgeruc "familyledger/internal/usecase/ledger"
	loanuc "familyledger/internal/usecase/loan"
	"familyledger/internal/usecase/payment"
	useruc "familyledger/internal/usecase/user"
	"familyledger/pkg/id"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// memDB backs the loan and user repository mocks with plain slices.
type memDB struct {
	mu         sync.Mutex
	users      []user.User
	loans      []loan.Loan
	statusErr  error
	statusHits int
}

func (d *memDB) userRepo() *usermock.Repo {
	find := func(match func(u *user.User) bool) (*user.User, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i := range d.users {
			if match(&d.users[i]) {
				cp := d.users[i]
				return &cp, nil
			}
		}
		return nil, user.ErrNotFound
	}
	return &usermock.Repo{
		CreateFn: func(_ context.Context, u *user.User) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			for _, existing := range d.users {
				if existing.Username == u.Username {
					return user.ErrDuplicateUsername
				}
			}
			u.ID = uint64(len(d.users) + 1)
			u.CreatedAt = time.Now().UTC()
			d.users = append(d.users, *u)
			return nil
		},
		GetByIDFn: func(_ context.Context, id uint64) (*user.User, error) {
			return find(func(u *user.User) bool { return u.ID == id })
		},
		GetByUserIDFn: func(_ context.Context, userID string) (*user.User, error) {
			return find(func(u *user.User) bool { return u.UserID == userID })
		},
		GetByUsernameFn: func(_ context.Context, username string) (*user.User, error) {
			return find(func(u *user.User) bool { return u.Username == username })
		},
		ListFn: func(_ context.Context) ([]user.User, error) {
			d.mu.Lock()
			defer d.mu.Unlock()
			return append([]user.User(nil), d.users...), nil
		},
		SetActiveFn: func(_ context.Context, id uint64, active bool) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i := range d.users {
				if d.users[i].ID == id {
					d.users[i].IsActive = active
					return nil
				}
			}
			return user.ErrNotFound
		},
	}
}

func (d *memDB) loanRepo() *loanmock.Repo {
	get := func(_ context.Context, loanID string) (*loan.Loan, error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i := range d.loans {
			if d.loans[i].LoanID == loanID {
				cp := d.loans[i]
				return &cp, nil
			}
		}
		return nil, loan.ErrNotFound
	}
	return &loanmock.Repo{
		CreateFn: func(_ context.Context, l *loan.Loan) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			l.ID = uint64(len(d.loans) + 1)
			l.CreatedAt = time.Now().UTC()
			d.loans = append(d.loans, *l)
			return nil
		},
		GetByLoanIDFn:          get,
		GetByLoanIDForUpdateFn: get,
		ListFn: func(_ context.Context, ownerID uint64) ([]loan.Loan, error) {
			d.mu.Lock()
			defer d.mu.Unlock()
			var out []loan.Loan
			for i := len(d.loans) - 1; i >= 0; i-- {
				if ownerID == 0 || d.loans[i].OwnerID == ownerID {
					out = append(out, d.loans[i])
				}
			}
			return out, nil
		},
		UpdateStatusFn: func(_ context.Context, id uint64, to loan.Status, from ...loan.Status) (bool, error) {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.statusHits++
			if d.statusErr != nil {
				return false, d.statusErr
			}
			for i := range d.loans {
				if d.loans[i].ID != id {
					continue
				}
				for _, s := range from {
					if d.loans[i].Status == s {
						d.loans[i].Status = to
						return true, nil
					}
				}
			}
			return false, nil
		},
	}
}

func (d *memDB) failStatusWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statusErr = err
}

type memSessions struct {
	mu sync.Mutex
	m  map[string]user.Principal
}

func (s *memSessions) Save(_ context.Context, token string, p user.Principal, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = p
	return nil
}

func (s *memSessions) Get(_ context.Context, token string) (user.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[token]
	if !ok {
		return user.Principal{}, user.ErrUnauthenticated
	}
	return p, nil
}

func (s *memSessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
	return nil
}

const (
	adminUser = "admin"
	adminPass = "admin-pass"
)

type fixture struct {
	t     *testing.T
	e     *echo.Echo
	db    *memDB
	store *movementmock.Store
}

// newFixture serves the full route table over in-memory repositories and a
// miniredis idempotency store, with one bootstrapped admin.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := &memDB{}
	store := movementmock.NewStore()
	repos := uow.Repos{Loans: db.loanRepo(), Movements: store, Users: db.userRepo()}
	tx := uowmock.Through(repos)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := useruc.NewUsecase(repos.Users, user.DefaultPasswordPolicy, bcrypt.MinCost)
	if _, err := users.Bootstrap(context.Background(), adminUser, adminPass, "Admin"); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	authUC := auth.NewUsecase(repos.Users, &memSessions{m: map[string]user.Principal{}}, time.Hour)
	ledgerUC := ledgeruc.NewUsecase(repos, tx)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newEchoWithValidator()
	RegisterRoutes(e, Handlers{
		Health:    NewHandler(),
		Auth:      NewAuthHandler(authUC),
		Users:     NewUserHandler(users, ledgerUC),
		Loans:     NewLoanHandler(loanuc.NewUsecase(repos, tx, "COP"), ledgerUC),
		Movements: NewMovementHandler(payment.NewUsecase(repos, tx, logger), ledgerUC, forgiveness.NewUsecase(repos, tx, logger)),
	}, middleware.RequireAuth(authUC), middleware.IdempotencyMiddleware(rdb, time.Minute))

	return &fixture{t: t, e: e, db: db, store: store}
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// doAs sends body as JSON with a bearer token; mutating requests carry a
// fresh request id unless reqID is given.
func (f *fixture) doAs(token, method, path string, body any, reqID ...string) *httptest.ResponseRecorder {
	f.t.Helper()
	var rdr io.Reader
	if body != nil {
		rdr = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if method != stdhttp.MethodGet {
		rid := id.NewID32()
		if len(reqID) > 0 {
			rid = reqID[0]
		}
		req.Header.Set(middleware.HeaderRequestID, rid)
		req.Header.Set(middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(username, password string) string {
	f.t.Helper()
	rec := f.doAs("", stdhttp.MethodPost, "/auth/login", map[string]string{"username": username, "password": password})
	if rec.Code != stdhttp.StatusOK {
		f.t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	return decode[auth.SessionDTO](f.t, rec).Token
}

func (f *fixture) adminToken() string { return f.login(adminUser, adminPass) }

// newClient creates a client account and returns its public id and a session token.
func (f *fixture) newClient(adminToken, username string) (string, string) {
	f.t.Helper()
	rec := f.doAs(adminToken, stdhttp.MethodPost, "/users", map[string]string{
		"username": username, "password": "client-pass", "display_name": username,
	})
	if rec.Code != stdhttp.StatusCreated {
		f.t.Fatalf("create user %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	return decode[useruc.UserDTO](f.t, rec).UserID, f.login(username, "client-pass")
}

func (f *fixture) newLoan(adminToken, ownerID, principal string) string {
	f.t.Helper()
	rec := f.doAs(adminToken, stdhttp.MethodPost, "/loans", map[string]string{
		"owner_id": ownerID, "principal": principal, "monthly_rate": "0",
	})
	if rec.Code != stdhttp.StatusCreated {
		f.t.Fatalf("create loan: status %d body %s", rec.Code, rec.Body.String())
	}
	return decode[loanuc.LoanDTO](f.t, rec).LoanID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return out
}
