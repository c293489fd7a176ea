package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"familyledger/internal/domain/user"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// sessionRecord is the stored form of a principal. user.Principal hides its
// numeric id from JSON, so it cannot be stored as is.
type sessionRecord struct {
	ID          uint64    `json:"id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        user.Role `json:"role"`
}

// SessionStore keeps login sessions in Redis under session:<token> with a TTL.
type SessionStore struct{ rdb *redis.Client }

func NewSessionStore(rdb *redis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

func (s *SessionStore) Save(ctx context.Context, token string, p user.Principal, ttl time.Duration) error {
	b, err := json.Marshal(sessionRecord{
		ID:          p.ID,
		UserID:      p.UserID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Role:        p.Role,
	})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionPrefix+token, b, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, token string) (user.Principal, error) {
	raw, err := s.rdb.Get(ctx, sessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return user.Principal{}, user.ErrUnauthenticated
	}
	if err != nil {
		return user.Principal{}, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return user.Principal{}, user.ErrUnauthenticated
	}
	return user.Principal{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		Role:        rec.Role,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionPrefix+token).Err()
}
