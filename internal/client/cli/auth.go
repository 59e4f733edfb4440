package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/fraudsentry/internal/client/provider"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
	"github.com/dmitrijs2005/fraudsentry/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askSecret reads a password and returns it as a string. The raw bytes are
// wiped before returning.
func (a *App) askSecret(prompt string) (string, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for the profile fields and the password twice, then
// creates the account. Invalid fields are listed and nothing is sent.
func (a *App) Register(ctx context.Context) error {
	v := views.NewRegister(a.prov)

	var err error
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter name", &v.Profile.Name},
		{"Enter email", &v.Profile.Email},
		{"Enter address", &v.Profile.Address},
		{"Enter mobile number", &v.Profile.MobileNumber},
	}
	for _, p := range prompts {
		if *p.dst, err = a.ask(p.label); err != nil {
			return err
		}
	}
	if v.Password, err = a.askSecret("Enter password"); err != nil {
		return err
	}
	if v.ConfirmPassword, err = a.askSecret("Confirm password"); err != nil {
		return err
	}

	a.log.Debug(ctx, "registering", "device_id", v.DeviceID())
	if err := v.Submit(ctx); err != nil {
		a.renderFailure(err, v.FieldErrors(), v.Banner())
		return err
	}

	a.println("Registration successful!")
	return a.follow(ctx, v.Next())
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	v := views.NewLogin(a.prov)

	var err error
	if v.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if v.Password, err = a.askSecret("Enter password"); err != nil {
		return err
	}

	if err := v.Submit(ctx); err != nil {
		a.renderFailure(err, v.FieldErrors(), v.Banner())
		return err
	}

	a.log.Info(ctx, "login successful")
	return a.follow(ctx, v.Next())
}

// ForgotPassword walks through the recovery steps. An empty answer aborts.
func (a *App) ForgotPassword(ctx context.Context) error {
	v := views.NewForgotPassword(a.gw)

	for v.Step() != views.StepDone {
		var (
			answer string
			err    error
		)
		switch v.Step() {
		case views.StepEmail:
			answer, err = a.ask("Enter your account email")
			v.Email = answer
		case views.StepOTP:
			answer, err = a.ask("Enter the OTP sent to " + v.Email)
			v.OTP = answer
		case views.StepNewPassword:
			answer, err = a.askSecret("Enter new password")
			v.NewPassword = answer
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			a.println("Cancelled.")
			return nil
		}

		if err := v.Submit(ctx); err != nil {
			a.renderFailure(err, v.FieldErrors(), v.Banner())
		}
	}

	a.println(v.Notice())
	return a.follow(ctx, v.Next())
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	v := views.NewProfile(a.prov)
	if err := v.SignOut(ctx); err != nil {
		a.renderFailure(err, nil, v.Banner())
		return err
	}
	return nil
}

// follow moves to the screen a view asked for after success.
func (a *App) follow(ctx context.Context, r provider.Route) error {
	switch r {
	case provider.RouteProfile:
		return a.Profile(ctx)
	case provider.RouteRegister:
		return a.Register(ctx)
	case provider.RouteLogin:
		a.println("Type 'login' to sign in.")
	}
	return nil
}

func (a *App) renderFailure(err error, fields validate.FieldErrors, banner string) {
	switch {
	case errors.Is(err, views.ErrInvalidInput):
		renderFieldErrors(a.out, fields)
	case errors.Is(err, provider.ErrNotAuthenticated):
		a.println("Please log in first.")
	case errors.Is(err, views.ErrBusy):
		a.println("Please wait, a request is already in progress.")
	case banner != "":
		a.println(banner)
	default:
		a.println("Error:", err)
	}
}
