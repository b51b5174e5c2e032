package config

// Config holds runtime settings for the quizauth CLI.
//
// Fields:
//   - ServerURL: base URL of the auth HTTP API.
//   - Transport: session carrier the server runs with, "cookie" or "header".
//   - StoreFile: SQLite file holding the bearer token in header mode.
type Config struct {
	ServerURL string
	Transport string
	StoreFile string
}

const (
	TransportCookie = "cookie"
	TransportHeader = "header"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Transport = TransportCookie
	c.StoreFile = "quizauth.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
