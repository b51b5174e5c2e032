package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/quizauth/internal/flagx"
	"github.com/dmitrijs2005/quizauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted. Only
// keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	TokenLifetime    *timex.Duration `json:"token_lifetime"`
	SessionTransport *string         `json:"session_transport"`
	CookieName       *string         `json:"cookie_name"`
	Production       *bool           `json:"production"`
	BcryptCost       *int            `json:"bcrypt_cost"`
	HashConcurrency  *int            `json:"hash_concurrency"`
	RateLimitMax     *int            `json:"rate_limit_max"`
	RateLimitWindow  *timex.Duration `json:"rate_limit_window"`
	RedisAddr        *string         `json:"redis_addr"`
	RedisPassword    *string         `json:"redis_password"`
	TrustedProxies   *[]string       `json:"trusted_proxies"`
	LogBackend       *string         `json:"log_backend"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flag, or by QUIZAUTH_CONFIG. Without either nothing is
// loaded. An unreadable or invalid file panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigPath("QUIZAUTH_CONFIG")

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.SessionTransport, c.SessionTransport)
	set(&config.CookieName, c.CookieName)
	set(&config.Production, c.Production)
	set(&config.BcryptCost, c.BcryptCost)
	set(&config.HashConcurrency, c.HashConcurrency)
	set(&config.RateLimitMax, c.RateLimitMax)
	set(&config.RedisAddr, c.RedisAddr)
	set(&config.RedisPassword, c.RedisPassword)
	set(&config.TrustedProxies, c.TrustedProxies)
	set(&config.LogBackend, c.LogBackend)
	if c.TokenLifetime != nil {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
