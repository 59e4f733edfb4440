// Package session persists the authenticated session across restarts.
//
// The persisted form is two slots: the serialized identity (user id plus
// profile) and the raw bearer token. Both are written and removed together
// in one transaction, so they can never drift apart. Anything unreadable in
// storage is treated as "no session", never as a failure.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/repositories/slots"
	"github.com/dmitrijs2005/fraudsentry/internal/dbx"
)

// Store is the Session Store contract consumed by the session provider.
type Store interface {
	Save(ctx context.Context, s models.Session) error
	Load(ctx context.Context) (models.Session, bool, error)
	Clear(ctx context.Context) error
}

// identity is the serialized form of the "user" slot.
type identity struct {
	UserID  string         `json:"userId"`
	Profile models.Profile `json:"profile"`
}

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Save writes both slots atomically. The session is trusted as given.
func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	raw, err := json.Marshal(identity{UserID: sess.UserID, Profile: sess.Profile})
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := slots.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, slots.KeyUser, raw); err != nil {
			return err
		}
		return repo.Set(ctx, slots.KeyAccessToken, []byte(sess.Token))
	})
}

// Load returns the last saved session. ok is false when nothing usable is
// stored: a missing slot, malformed identity JSON, an empty user id or token,
// or a JWT whose exp claim has passed. Only storage failures produce an error.
func (s *SQLiteStore) Load(ctx context.Context) (models.Session, bool, error) {
	repo := slots.NewSQLiteRepository(s.db)

	rawUser, err := repo.Get(ctx, slots.KeyUser)
	if err != nil {
		return models.Session{}, false, err
	}
	rawToken, err := repo.Get(ctx, slots.KeyAccessToken)
	if err != nil {
		return models.Session{}, false, err
	}
	if len(rawUser) == 0 || len(rawToken) == 0 {
		return models.Session{}, false, nil
	}

	var id identity
	if err := json.Unmarshal(rawUser, &id); err != nil {
		return models.Session{}, false, nil
	}

	sess := models.Session{UserID: id.UserID, Token: string(rawToken), Profile: id.Profile}
	if !sess.Valid() || TokenExpired(sess.Token, s.now()) {
		return models.Session{}, false, nil
	}
	return sess, true, nil
}

// Clear removes both session slots in one transaction. Idempotent.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return slots.NewSQLiteRepository(tx).Delete(ctx, slots.KeyUser, slots.KeyAccessToken)
	})
}

// TokenExpired reports whether token is a JWT with an exp claim at or before
// now. The signature is not checked. Opaque (non-JWT) tokens and tokens
// without exp are never considered expired here; the API decides.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
