package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/quizauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-g string     gRPC health bind address (empty disables)
//	-d string     PostgreSQL DSN (empty uses the in-memory store)
//	-s string     JWT HMAC secret key
//	-t duration   token lifetime (e.g., "24h")
//	-m string     session transport: cookie or header
//	-p            production mode
//	-b int        bcrypt cost
//	-n int        rate limit attempts per window
//	-w duration   rate limit window
//	-r string     Redis address for rate limiting
//	-l string     log backend: slog or zap
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-m", "-p", "-b", "-n", "-w", "-r", "-l"}, "-p")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenLifetime, "t", config.TokenLifetime, "token lifetime")
	fs.StringVar(&config.SessionTransport, "m", config.SessionTransport, "session transport (cookie|header)")
	fs.BoolVar(&config.Production, "p", config.Production, "production mode")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.RateLimitMax, "n", config.RateLimitMax, "rate limit attempts per window")
	fs.DurationVar(&config.RateLimitWindow, "w", config.RateLimitWindow, "rate limit window")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
