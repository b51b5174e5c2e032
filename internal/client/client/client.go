// Package client talks to the quizauth HTTP API.
package client

import "context"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResult is returned by signup and login. Token is set only when the
// server runs the header transport; with cookies the jar holds the session.
type AuthResult struct {
	Msg   string
	User  User
	Token string
}

type Client interface {
	Signup(ctx context.Context, username string, password []byte) (*AuthResult, error)
	Login(ctx context.Context, username string, password []byte) (*AuthResult, error)
	Me(ctx context.Context, token string) (*User, error)
	Logout(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}
