package recovery

import (
	"context"
	"sync"
	"time"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/logging"
)

// completionDelay is how long the success message stays on screen before the
// completion signal fires.
const completionDelay = 2 * time.Second

// ResetFlow performs the password reset that follows code verification. It
// is constructed with the verified email and signals completion via onDone
// after a fixed display delay.
type ResetFlow struct {
	api   api.Client
	log   logging.Logger
	email string

	loading    bool
	errMsg     string
	successMsg string
	done       bool

	delay  time.Duration
	onDone func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func NewResetFlow(apiClient api.Client, log logging.Logger, email string, onDone func()) *ResetFlow {
	return &ResetFlow{
		api:    apiClient,
		log:    log.With("component", "recovery-reset"),
		email:  email,
		delay:  completionDelay,
		onDone: onDone,
	}
}

func (r *ResetFlow) Email() string   { return r.email }
func (r *ResetFlow) IsLoading() bool { return r.loading }
func (r *ResetFlow) Error() string   { return r.errMsg }
func (r *ResetFlow) Success() string { return r.successMsg }
func (r *ResetFlow) Done() bool      { return r.done }

// Submit validates locally (code length, password length, confirmation
// match) and then performs the remote reset. On success the flow is terminal
// and onDone fires after the display delay; on failure it stays interactive
// for retry.
func (r *ResetFlow) Submit(ctx context.Context, code, newPassword, confirm string) {
	if r.loading || r.done {
		return
	}
	r.loading = true
	defer func() { r.loading = false }()
	r.errMsg = ""
	r.successMsg = ""

	switch {
	case len(code) != CodeLength:
		r.errMsg = "The reset code must be exactly 6 characters."
		return
	case len(newPassword) < 6:
		r.errMsg = "The new password must be at least 6 characters."
		return
	case newPassword != confirm:
		r.errMsg = "The passwords do not match."
		return
	}

	if err := r.api.ResetPassword(ctx, r.email, code, newPassword); err != nil {
		r.errMsg = failureMessage(err)
		r.log.Warn(ctx, "password reset failed", "error", err)
		return
	}

	r.done = true
	r.successMsg = "Your password has been reset. Redirecting to sign-in..."

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		closed := r.closed
		r.mu.Unlock()
		if closed || r.onDone == nil {
			return
		}
		r.onDone()
	})
}

// Close discards a pending completion signal. A flow torn down before the
// delay elapses never fires onDone.
func (r *ResetFlow) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
	}
}
