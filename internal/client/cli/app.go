package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/quizauth/internal/client/client"
	"github.com/dmitrijs2005/quizauth/internal/client/config"
	"github.com/dmitrijs2005/quizauth/internal/client/services"
	"github.com/dmitrijs2005/quizauth/internal/client/store"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	store       *store.TokenStore
	userName    string
	reader      *bufio.Reader
	prompt      prompter
	out         io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	var (
		st          *store.TokenStore
		storeTokens bool
	)

	switch c.Transport {
	case config.TransportCookie:
	case config.TransportHeader:
		var err error
		st, err = store.Open(ctx, c.StoreFile)
		if err != nil {
			return nil, fmt.Errorf("error opening token store: %w", err)
		}
		storeTokens = true
	default:
		return nil, fmt.Errorf("unknown transport %q", c.Transport)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)
	app := &App{
		config: c,
		store:  st,
		reader: reader,
		prompt: newTermPrompter(reader, os.Stdout, int(os.Stdin.Fd())),
		out:    os.Stdout,
	}
	if st != nil {
		app.authService = services.NewAuthService(apiClient, st, storeTokens)
	} else {
		app.authService = services.NewAuthService(apiClient, nil, false)
	}
	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

// Run blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to quizauth CLI (type 'help' for commands)")

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}
	a.userName = a.authService.Remembered(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
