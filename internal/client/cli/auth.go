package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/quizauth/internal/client/client"
	"github.com/dmitrijs2005/quizauth/internal/common"
)

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := a.prompt.Line("Enter username")
	if err != nil {
		return "", nil, err
	}
	password, err := a.prompt.Secret("Enter password")
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Signup(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Signup(ctx, userName, password)
	if err != nil {
		return err
	}

	a.userName = u.Username
	printlnFn("Signup successful, signed in as", u.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.userName = u.Username
	printlnFn("Login successful")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.userName = ""
		}
		return err
	}
	a.userName = u.Username
	printlnFn("id:", u.ID, "username:", u.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.userName = ""
	if err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Msg != "":
		return apiErr.Msg
	case errors.Is(err, client.ErrUnauthorized):
		return "not logged in"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	}
	return common.UserMessage(err, err.Error())
}
