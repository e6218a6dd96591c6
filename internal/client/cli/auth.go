package cli

import (
	"context"
)

// Interactive helpers are indirections used to facilitate testing.
// They point to the prompt functions in input.go and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getSecret     = GetSecret
	getMultiline  = GetMultiline
	confirm       = Confirm
)

// Login prompts for credentials and signs in through the state container.
// On failure the identity error message is printed and the view stays on
// the login screen.
func (a *App) Login(ctx context.Context) error {
	a.session.ShowLogin()
	return a.authenticate(ctx, a.session.Login)
}

// Signup prompts for credentials and creates a new account. A successful
// sign-up also signs the user in.
func (a *App) Signup(ctx context.Context) error {
	a.session.ShowSignup()
	return a.authenticate(ctx, a.session.Signup)
}

func (a *App) authenticate(ctx context.Context, submit func(context.Context) error) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.session.SetEmail(email)
	// The container owns the buffer from here and wipes it after the attempt.
	a.session.SetPassword(password)

	if err := submit(ctx); err != nil {
		a.log.Debug(ctx, "authentication failed", "error", err)
		a.printBanners()
		return err
	}

	printlnFn(renderSuccess("Signed in as " + a.session.Email()))
	return a.List(ctx)
}

// Logout ends the session. The local bot mirror is kept.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Signed out")
	return nil
}

// printBanners shows the container's pending banners. The error banner is
// dismissed once shown.
func (a *App) printBanners() {
	if msg := a.session.ErrorMessage(); msg != "" {
		printlnFn(renderError(msg))
		a.session.DismissError()
	}
	if msg := a.session.SuccessMessage(); msg != "" {
		printlnFn(renderSuccess(msg))
	}
}
