package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.EndpointAddrGRPC)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, DevelopmentSecretKey, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenLifetime)
	assert.Equal(t, "cookie", c.SessionTransport)
	assert.Equal(t, "token", c.CookieName)
	assert.False(t, c.Production)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, 10, c.RateLimitMax)
	assert.Equal(t, 15*time.Minute, c.RateLimitWindow)
	assert.Empty(t, c.TrustedProxies)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "production with real secret", mutate: func(c *Config) {
			c.Production = true
			c.SecretKey = "a-long-random-secret"
		}},
		{name: "production with dev secret", mutate: func(c *Config) { c.Production = true }, wantErr: true},
		{name: "empty secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: true},
		{name: "both transports", mutate: func(c *Config) { c.SessionTransport = "both" }, wantErr: true},
		{name: "header transport", mutate: func(c *Config) { c.SessionTransport = "header" }},
		{name: "zero lifetime", mutate: func(c *Config) { c.TokenLifetime = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestLoadConfig_RefusesDevSecretInProduction(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-p"}

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http": ":7000",
		"secret_key":         "from-json",
	})
	t.Setenv(EnvSecretKey, "from-env")
	os.Args = []string{"testbin", "-c", path, "-a", ":9000"}

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.EndpointAddrHTTP, "flags beat json")
	assert.Equal(t, "from-env", c.SecretKey, "env beats json")
}
