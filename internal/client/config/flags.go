package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/quizauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the auth server
//	-t string   session transport, cookie or header
//	-f string   token store file
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the auth server")
	fs.StringVar(&cfg.Transport, "t", cfg.Transport, "session transport (cookie|header)")
	fs.StringVar(&cfg.StoreFile, "f", cfg.StoreFile, "token store file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
