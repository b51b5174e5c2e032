// Package services contains application services for the quizauth client.
// The auth service validates input locally, calls the API and keeps the
// bearer token in the local store when the server uses header transport.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizauth/internal/client/client"
	"github.com/dmitrijs2005/quizauth/internal/client/store"
	"github.com/dmitrijs2005/quizauth/internal/credentials"
)

// TokenStore is the subset of store.TokenStore the service needs.
type TokenStore interface {
	Load(ctx context.Context) (store.Session, error)
	Save(ctx context.Context, sess store.Session) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Signup(ctx context.Context, username string, password []byte) (*client.User, error)
	Login(ctx context.Context, username string, password []byte) (*client.User, error)
	Me(ctx context.Context) (*client.User, error)
	Logout(ctx context.Context) error
	// Remembered returns the username of a stored header-mode session, if any.
	Remembered(ctx context.Context) string
	Ping(ctx context.Context) error
}

type authService struct {
	client      client.Client
	store       TokenStore
	storeTokens bool
}

// NewAuthService builds the service. With storeTokens false (cookie
// transport) the HTTP client's jar carries the session and st may be nil.
func NewAuthService(c client.Client, st TokenStore, storeTokens bool) AuthService {
	return &authService{client: c, store: st, storeTokens: storeTokens}
}

// Signup checks the same rules the server enforces before sending anything.
func (a *authService) Signup(ctx context.Context, username string, password []byte) (*client.User, error) {
	if err := credentials.ValidateSignupBytes(username, password); err != nil {
		return nil, err
	}

	res, err := a.client.Signup(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := a.remember(ctx, res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*client.User, error) {
	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := a.remember(ctx, res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (a *authService) remember(ctx context.Context, res *client.AuthResult) error {
	if !a.storeTokens {
		return nil
	}
	if res.Token == "" {
		return fmt.Errorf("server returned no token; is it running with header transport?")
	}
	if err := a.store.Save(ctx, store.Session{Token: res.Token, Username: res.User.Username}); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	return nil
}

func (a *authService) token(ctx context.Context) (string, error) {
	if !a.storeTokens {
		return "", nil
	}
	sess, err := a.store.Load(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (a *authService) Me(ctx context.Context) (*client.User, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.Me(ctx, token)
}

// Logout tells the server and forgets the stored token even when the call
// fails, since a stale token is useless anyway.
func (a *authService) Logout(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	callErr := a.client.Logout(ctx, token)

	if a.storeTokens {
		if err := a.store.Clear(ctx); err != nil {
			return err
		}
	}
	return callErr
}

func (a *authService) Remembered(ctx context.Context) string {
	if !a.storeTokens {
		return ""
	}
	sess, err := a.store.Load(ctx)
	if err != nil || sess.Token == "" {
		return ""
	}
	return sess.Username
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
