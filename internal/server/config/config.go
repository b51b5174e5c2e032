// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quizauth/internal/common"
)

// DevelopmentSecretKey is the built-in signing secret. It is refused in
// production.
const DevelopmentSecretKey = "secretKey"

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - EndpointAddrGRPC: bind address for the gRPC health service; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenLifetime: validity of issued tokens and of the session cookie.
//   - SessionTransport: "cookie" or "header".
//   - Production: enables Secure/SameSite=None cookies and the secret check.
//   - BcryptCost / HashConcurrency: password hashing work factor and parallelism.
//   - RateLimitMax / RateLimitWindow: attempts allowed per client address.
//   - RedisAddr: shared rate-limit state; empty keeps it in memory.
//   - TrustedProxies: addresses or CIDRs whose X-Forwarded-For is believed
//     when keying the rate limiter. Empty trusts none.
//   - LogBackend: "slog" or "zap".
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	DatabaseDSN      string
	SecretKey        string
	TokenLifetime    time.Duration
	SessionTransport string
	CookieName       string
	Production       bool
	BcryptCost       int
	HashConcurrency  int
	RateLimitMax     int
	RateLimitWindow  time.Duration
	RedisAddr        string
	RedisPassword    string
	TrustedProxies   []string
	LogBackend       string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ""
	c.DatabaseDSN = ""
	c.SecretKey = DevelopmentSecretKey
	c.TokenLifetime = common.DefaultTokenLifetime
	c.SessionTransport = "cookie"
	c.CookieName = common.DefaultCookieName
	c.Production = false
	c.BcryptCost = 10
	c.HashConcurrency = 0
	c.RateLimitMax = 10
	c.RateLimitWindow = 15 * time.Minute
	c.RedisAddr = ""
	c.TrustedProxies = nil
	c.LogBackend = "slog"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key must not be empty")
	}
	if c.Production && c.SecretKey == DevelopmentSecretKey {
		return errors.New("refusing to run in production with the development secret key")
	}
	if c.SessionTransport != "cookie" && c.SessionTransport != "header" {
		return fmt.Errorf("session transport must be cookie or header, got %q", c.SessionTransport)
	}
	if c.TokenLifetime <= 0 {
		return errors.New("token lifetime must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
