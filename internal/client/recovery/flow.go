// Package recovery drives the credential-recovery flow: email submission,
// reset-code verification, and the follow-up password reset. The flow is
// independent of any live session and is never persisted; tearing one down
// discards whatever was in flight.
package recovery

import (
	"context"
	"errors"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/logging"
	"github.com/greengrid/rectrade/internal/models"
	"github.com/greengrid/rectrade/internal/validx"
)

// CodeLength is the exact length of a reset code. Anything else is rejected
// locally, before a remote call.
const CodeLength = 6

type Step int

const (
	StepAwaitingEmail Step = iota
	StepAwaitingCode
)

// genericFailureMsg is shown for transport and unexpected errors; remote-
// reported failures surface their own message verbatim.
const genericFailureMsg = "Something went wrong. Please try again."

// Flow is the email→code state machine. Single-writer, like the session
// manager: one user interaction drives it at a time, and the loading flag
// rejects a submit while another call is outstanding.
type Flow struct {
	api api.Client
	log logging.Logger

	step  Step
	email string
	code  string

	loading    bool
	errMsg     string
	successMsg string

	onVerified func(email string)
	completed  bool
	closed     bool
}

// NewFlow creates a flow in StepAwaitingEmail. onVerified is invoked exactly
// once, with the verified email, when a reset code is accepted.
func NewFlow(apiClient api.Client, log logging.Logger, onVerified func(email string)) *Flow {
	return &Flow{
		api:        apiClient,
		log:        log.With("component", "recovery"),
		onVerified: onVerified,
	}
}

func (f *Flow) Step() Step      { return f.step }
func (f *Flow) Email() string   { return f.email }
func (f *Flow) Code() string    { return f.code }
func (f *Flow) IsLoading() bool { return f.loading }

// Error and Success are mutually exclusive; both are cleared at the start of
// every submit.
func (f *Flow) Error() string   { return f.errMsg }
func (f *Flow) Success() string { return f.successMsg }

// begin gates a submit: returns false while another call is outstanding or
// after Close. It resets both messages.
func (f *Flow) begin() bool {
	if f.loading || f.closed {
		return false
	}
	f.loading = true
	f.errMsg = ""
	f.successMsg = ""
	return true
}

// SubmitEmail validates the email locally, then requests a reset code. On
// success the flow advances to StepAwaitingCode; on failure it stays put
// with an error message.
func (f *Flow) SubmitEmail(ctx context.Context, email string) {
	if !f.begin() {
		return
	}
	defer func() { f.loading = false }()

	email = models.NormalizeEmail(email)
	if err := validx.Var(email, "required,email"); err != nil {
		f.errMsg = "Please enter a valid email address."
		return
	}

	msg, err := f.api.ForgotPassword(ctx, email)
	if err != nil {
		f.errMsg = failureMessage(err)
		f.log.Warn(ctx, "forgot-password request failed", "error", err)
		return
	}

	f.email = email
	f.step = StepAwaitingCode
	f.successMsg = msg
	if f.successMsg == "" {
		f.successMsg = "A reset code has been sent to your email."
	}
}

// SubmitCode verifies a reset code. Codes of the wrong length are rejected
// without a remote call. On remote success the completion callback fires
// exactly once; on failure the flow remains in StepAwaitingCode for retry.
func (f *Flow) SubmitCode(ctx context.Context, code string) {
	if !f.begin() {
		return
	}
	defer func() { f.loading = false }()

	if f.step != StepAwaitingCode {
		f.errMsg = "Request a reset code first."
		return
	}

	f.code = code
	if len(code) != CodeLength {
		f.errMsg = "The reset code must be exactly 6 characters."
		return
	}

	if err := f.api.VerifyResetCode(ctx, f.email, code); err != nil {
		f.errMsg = failureMessage(err)
		f.log.Warn(ctx, "reset code rejected", "error", err)
		return
	}

	if f.completed || f.closed {
		return
	}
	f.completed = true
	if f.onVerified != nil {
		f.onVerified(f.email)
	}
}

// Resend clears the code field and requests a fresh code for the already
// submitted email. The step does not change.
func (f *Flow) Resend(ctx context.Context) {
	if !f.begin() {
		return
	}
	defer func() { f.loading = false }()

	if f.step != StepAwaitingCode {
		f.errMsg = "Request a reset code first."
		return
	}

	f.code = ""
	msg, err := f.api.ForgotPassword(ctx, f.email)
	if err != nil {
		f.errMsg = failureMessage(err)
		f.log.Warn(ctx, "resend failed", "error", err)
		return
	}
	f.successMsg = msg
	if f.successMsg == "" {
		f.successMsg = "A new reset code has been sent."
	}
}

// Close tears the flow down: subsequent submits are ignored and a result
// arriving afterwards is discarded rather than applied.
func (f *Flow) Close() {
	f.closed = true
}

// failureMessage maps an error to user-facing copy: remote-reported messages
// verbatim, everything else generic.
func failureMessage(err error) string {
	var remote *api.RemoteError
	if errors.As(err, &remote) {
		return remote.Error()
	}
	return genericFailureMsg
}
