package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr         = "QUIZAUTH_HTTP_ADDR"
	EnvGRPCAddr         = "QUIZAUTH_GRPC_ADDR"
	EnvDatabaseDSN      = "QUIZAUTH_DATABASE_DSN"
	EnvSecretKey        = "QUIZAUTH_JWT_SECRET"
	EnvTokenLifetime    = "QUIZAUTH_TOKEN_LIFETIME"
	EnvSessionTransport = "QUIZAUTH_SESSION_TRANSPORT"
	EnvProduction       = "QUIZAUTH_PRODUCTION"
	EnvRedisAddr        = "QUIZAUTH_REDIS_ADDR"
	EnvRedisPassword    = "QUIZAUTH_REDIS_PASSWORD"
	EnvTrustedProxies   = "QUIZAUTH_TRUSTED_PROXIES"
	EnvLogBackend       = "QUIZAUTH_LOG_BACKEND"
)

// parseEnv overlays values from set environment variables. Secrets are
// usually injected this way rather than through files or flags.
func parseEnv(config *Config) error {
	for name, dst := range map[string]*string{
		EnvHTTPAddr:         &config.EndpointAddrHTTP,
		EnvGRPCAddr:         &config.EndpointAddrGRPC,
		EnvDatabaseDSN:      &config.DatabaseDSN,
		EnvSecretKey:        &config.SecretKey,
		EnvSessionTransport: &config.SessionTransport,
		EnvRedisAddr:        &config.RedisAddr,
		EnvRedisPassword:    &config.RedisPassword,
		EnvLogBackend:       &config.LogBackend,
	} {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvTokenLifetime); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenLifetime, err)
		}
		config.TokenLifetime = d
	}

	// comma separated; an empty value trusts no proxy
	if v, ok := os.LookupEnv(EnvTrustedProxies); ok {
		config.TrustedProxies = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				config.TrustedProxies = append(config.TrustedProxies, p)
			}
		}
	}

	if v, ok := os.LookupEnv(EnvProduction); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProduction, err)
		}
		config.Production = b
	}

	return nil
}
