package common

import "time"

const (
	// AuthorizationHeaderName carries the bearer token when the header
	// transport is active.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted Authorization scheme.
	BearerScheme = "Bearer"

	// DefaultCookieName is the session cookie name for the cookie transport.
	DefaultCookieName = "token"

	// DefaultTokenLifetime is how long an issued token stays valid.
	DefaultTokenLifetime = 24 * time.Hour
)
