package cli

import (
	"context"
	"os"

	"github.com/greengrid/rectrade/internal/client/recovery"
	"github.com/greengrid/rectrade/internal/common"
)

// maxCodeAttempts bounds the interactive verification loop so a wrong code
// cannot trap the user in the recovery prompt.
const maxCodeAttempts = 5

// Recover drives the password recovery conversation: account email, then the
// 6-character code from the email, then the new password. Typing "resend"
// at the code prompt requests a fresh code; an empty answer aborts.
func (a *App) Recover(ctx context.Context) error {
	verified := false
	flow := recovery.NewFlow(a.api, a.log, func(string) { verified = true })
	defer flow.Close()

	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}

	flow.SubmitEmail(ctx, email)
	if msg := flow.Error(); msg != "" {
		printlnFn(msg)
		return nil
	}
	printlnFn(flow.Success())

	var code string
	for attempt := 0; !verified; attempt++ {
		if attempt == maxCodeAttempts {
			printlnFn("Too many attempts. Start over with 'recover'.")
			return nil
		}

		code, err = getSimpleText(a.reader, "Enter the 6-character code (or 'resend', empty to abort)", os.Stdout)
		if err != nil {
			return err
		}
		switch code {
		case "":
			return nil
		case "resend":
			flow.Resend(ctx)
			if msg := flow.Error(); msg != "" {
				printlnFn(msg)
			} else {
				printlnFn(flow.Success())
			}
			continue
		}

		flow.SubmitCode(ctx, code)
		if msg := flow.Error(); msg != "" {
			printlnFn(msg)
		}
	}

	return a.resetPassword(ctx, flow.Email(), code)
}

// Reset sets a new password directly, for a user who already holds a reset
// code from the recovery email. The backend verifies the code again.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter account email", os.Stdout)
	if err != nil {
		return err
	}

	code, err := getSimpleText(a.reader, "Enter the 6-character code", os.Stdout)
	if err != nil {
		return err
	}

	return a.resetPassword(ctx, email, code)
}

// resetPassword finishes recovery by setting the new password using the
// already-verified code.
func (a *App) resetPassword(ctx context.Context, email, code string) error {
	reset := recovery.NewResetFlow(a.api, a.log, email, func() {})
	defer reset.Close()

	password, err := getPassword(os.Stdout, "New password (min 6 characters)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	reset.Submit(ctx, code, string(password), string(confirm))
	if !reset.Done() {
		printlnFn(reset.Error())
		return nil
	}

	printlnFn(reset.Success())
	printlnFn("You can now sign in with your new password.")
	return nil
}
