// Package store persists the client's bearer token between runs, the way a
// browser keeps it in local storage.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/quizauth/internal/client/migrations"
	"github.com/dmitrijs2005/quizauth/internal/dbx"
	"github.com/dmitrijs2005/quizauth/internal/filex"

	_ "modernc.org/sqlite"
)

const (
	keyToken    = "auth.token"
	keyUsername = "auth.username"
)

// Session is what the client remembers about the signed-in user.
type Session struct {
	Token    string
	Username string
}

type TokenStore struct {
	db *sql.DB
}

// gooseUpContext is a test seam.
var gooseUpContext = goose.UpContext

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return gooseUpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite file at dsn and applies the
// schema. ":memory:" is accepted.
func Open(ctx context.Context, dsn string) (*TokenStore, error) {
	if dsn != ":memory:" {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &TokenStore{db: db}, nil
}

// Load returns an empty Session when nothing is stored.
func (s *TokenStore) Load(ctx context.Context) (Session, error) {
	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (Session, error) {
		repo := NewMetadataRepository(tx)

		token, err := repo.Get(ctx, keyToken)
		if err != nil {
			return Session{}, err
		}
		username, err := repo.Get(ctx, keyUsername)
		if err != nil {
			return Session{}, err
		}
		return Session{Token: string(token), Username: string(username)}, nil
	})
}

func (s *TokenStore) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewMetadataRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUsername, []byte(sess.Username))
	})
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewMetadataRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUsername)
	})
}

func (s *TokenStore) Close() error {
	return s.db.Close()
}
