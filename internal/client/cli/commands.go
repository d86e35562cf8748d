package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/accountkeeper/internal/client/client"
	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// report prints err in a user-facing form and returns it unchanged.
func (a *App) report(err error) error {
	var br *client.BadRequestError
	switch {
	case errors.As(err, &br):
		fmt.Fprintln(a.out, "Invalid request:")
		for _, v := range br.Violations {
			fmt.Fprintf(a.out, "  %s: %s\n", v.Field, v.Description)
		}
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server is unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Request rejected, check the API key")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}

func (a *App) Create(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	username, password, err := a.api.CreateAccount(ctx)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Account created. The password is shown only once.")
	fmt.Fprintf(a.out, "  username: %s\n  password: %s\n", username, password)
	return nil
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	accounts, err := a.api.ListAccounts(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No active accounts")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tPASSWORD HASH")
	for _, acc := range accounts {
		hash := acc.Password
		if hash == "" {
			hash = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", acc.Username, hash)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d account(s)\n", len(accounts))
	return nil
}

func (a *App) readCredentials(args []string) (string, []byte, error) {
	username, err := argOrPrompt(args, 0, a.reader, "Username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

func (a *App) Check(ctx context.Context, args []string) error {
	username, password, err := a.readCredentials(args)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.CheckCredentials(ctx, username, string(password)); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Credentials are valid")
	return nil
}

// Login accepts "login [username] [method]". The jwt method does not ask
// for a password.
func (a *App) Login(ctx context.Context, args []string) error {
	method := "credentials"
	if len(args) > 1 {
		method = args[1]
	}

	var (
		username string
		password []byte
		err      error
	)
	if method == "jwt" {
		username, err = argOrPrompt(args, 0, a.reader, "Username", a.out)
	} else {
		username, password, err = a.readCredentials(args)
	}
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	token, err := a.api.Login(ctx, username, string(password), method)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Login successful")
	if token != "" {
		fmt.Fprintf(a.out, "  token: %s\n", token)
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	username, err := argOrPrompt(args, 0, a.reader, "Username", a.out)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.DeleteAccount(ctx, username); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Account %s deleted\n", username)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return a.report(err)
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Server is serving")
	return nil
}
