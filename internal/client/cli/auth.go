package cli

import (
	"context"
	"os"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/common"
	"github.com/greengrid/rectrade/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate.
//
// Authentication is all-or-nothing: on success the session manager holds the
// user and the token is persisted; on any failure the session stays fully
// logged out. The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.session.Login(ctx, email, string(password)) {
		printlnFn("Login failed. Check your credentials and try again.")
		return nil
	}

	printlnFn("Welcome back,", a.session.User().FirstName)
	return nil
}

// Register walks the user through account creation. The request is validated
// locally before anything is sent; a successful signup leaves the user
// logged in.
func (a *App) Register(ctx context.Context) error {
	req := api.RegisterRequest{}

	var err error
	if req.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password (min 6 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	if req.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return err
	}
	if req.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return err
	}
	if req.Company, err = getSimpleText(a.reader, "Company", os.Stdout); err != nil {
		return err
	}
	if req.Emirate, err = getSimpleText(a.reader, "Emirate", os.Stdout); err != nil {
		return err
	}

	role, err := getSimpleText(a.reader, "Role (trader/facility-owner, empty for trader)", os.Stdout)
	if err != nil {
		return err
	}
	req.Role = models.Role(role)

	if !a.session.Signup(ctx, req) {
		printlnFn("Signup failed. Check the entered details and try again.")
		return nil
	}

	printlnFn("Account created. You are now signed in.")
	return nil
}

// Logout ends the session. The remote call is best-effort; local state and
// the stored token are cleared regardless.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Signed out.")
	return nil
}
