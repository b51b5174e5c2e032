// Package services contains server-side business logic. This file implements
// AuthService: signup, login and token authentication.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/dmitrijs2005/quizauth/internal/common"
	"github.com/dmitrijs2005/quizauth/internal/credentials"
	"github.com/dmitrijs2005/quizauth/internal/server/auth"
	"github.com/dmitrijs2005/quizauth/internal/server/metrics"
	"github.com/dmitrijs2005/quizauth/internal/server/models"
	"github.com/dmitrijs2005/quizauth/internal/server/repositories/repomanager"
)

// User-facing messages for rejected requests.
const (
	MsgDuplicate          = "Username already exists!"
	MsgInvalidCredentials = "Invalid credentials"
	MsgMissingFields      = "Username and password are required."
)

// PasswordHasher is implemented by auth.BcryptHasher.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
	VerifyDummy(ctx context.Context, plaintext string)
}

// TokenIssuer is implemented by auth.Issuer.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
	Verify(token string) (*auth.Identity, error)
}

// Session is the result of a successful signup or login.
type Session struct {
	Identity auth.Identity
	Token    string
}

// AuthService orchestrates the validator, hasher, store and token issuer.
//
// Rejections come back as *common.RejectedError whose Kind is one of
// common.ErrValidation, ErrDuplicate, ErrMalformed or ErrInvalidCredentials.
// Any other error is an infrastructure failure.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	issuer      TokenIssuer
	metrics     *metrics.Metrics
}

// NewAuthService wires the service. db may be nil when the repository
// manager does not need a connection.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, i TokenIssuer, mx *metrics.Metrics) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      h,
		issuer:      i,
		metrics:     mx,
	}
}

func (s *AuthService) Signup(ctx context.Context, username, password string) (*Session, error) {
	// validate what the client sent; lowercasing can fold non-ASCII runes
	// into the allowed set
	if err := credentials.ValidateSignup(username, password); err != nil {
		return nil, err
	}
	userName := credentials.NormalizeUsername(username)

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByUsername(ctx, userName)
	switch {
	case err == nil:
		return nil, common.Reject(common.ErrDuplicate, MsgDuplicate)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, oops.Code("STORE_UNAVAILABLE").With("op", "signup.lookup").Wrap(err)
	}

	hash, err := s.hash(ctx, password)
	if err != nil {
		return nil, err
	}

	u, err := repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
	if err != nil {
		// lost a race with a concurrent signup for the same name
		if errors.Is(err, common.ErrDuplicate) {
			return nil, common.Reject(common.ErrDuplicate, MsgDuplicate)
		}
		return nil, oops.Code("STORE_UNAVAILABLE").With("op", "signup.create").Wrap(err)
	}

	return s.newSession(u)
}

// Login checks credentials. An unknown username and a wrong password yield
// the same rejection.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, common.Reject(common.ErrMalformed, MsgMissingFields)
	}
	userName := credentials.NormalizeUsername(username)

	repo := s.repomanager.Users(s.db)

	u, err := repo.GetByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			start := time.Now()
			s.hasher.VerifyDummy(ctx, password)
			s.metrics.ObserveHash(metrics.OpVerify, time.Since(start))
			return nil, common.Reject(common.ErrInvalidCredentials, MsgInvalidCredentials)
		}
		return nil, oops.Code("STORE_UNAVAILABLE").With("op", "login.lookup").Wrap(err)
	}

	start := time.Now()
	ok, err := s.hasher.Verify(ctx, password, u.PasswordHash)
	s.metrics.ObserveHash(metrics.OpVerify, time.Since(start))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.Reject(common.ErrInvalidCredentials, MsgInvalidCredentials)
	}

	return s.newSession(u)
}

// Authenticate resolves a token into the identity it asserts.
func (s *AuthService) Authenticate(token string) (*auth.Identity, error) {
	return s.issuer.Verify(token)
}

func (s *AuthService) hash(ctx context.Context, password string) (string, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(metrics.OpHash, time.Since(start)) }()

	return s.hasher.Hash(ctx, password)
}

func (s *AuthService) newSession(u *models.User) (*Session, error) {
	id := auth.Identity{ID: u.ID, Username: u.UserName}
	token, err := s.issuer.Issue(id)
	if err != nil {
		return nil, oops.Code("TOKEN_ISSUE_FAILED").Wrap(err)
	}
	return &Session{Identity: id, Token: token}, nil
}
