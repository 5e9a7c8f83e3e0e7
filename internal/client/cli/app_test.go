package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/client/dashboard"
	"github.com/greengrid/rectrade/internal/client/session"
	"github.com/greengrid/rectrade/internal/logging"
	"github.com/greengrid/rectrade/internal/models"
)

// fakeAPI is a scriptable api.Client for command tests.
type fakeAPI struct {
	token string

	loginRes    *api.AuthResult
	loginErr    error
	registerRes *api.AuthResult
	registerErr error

	logoutCalled bool

	updateRes *models.User
	updateErr error

	forgotErr error
	verifyErr error
	resetErr  error

	verifyCodes []string

	holdings *models.HoldingsSummary
	orders   []models.Order
	txs      []models.Transaction
	fetchErr error
}

func (f *fakeAPI) Close() error          { return nil }
func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Login(_ context.Context, _, _ string) (*api.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.token = f.loginRes.Token
	return f.loginRes, nil
}

func (f *fakeAPI) Register(_ context.Context, _ api.RegisterRequest) (*api.AuthResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.token = f.registerRes.Token
	return f.registerRes, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}

func (f *fakeAPI) CurrentUser(context.Context) (*models.User, error) {
	if f.loginRes == nil {
		return nil, api.ErrUnauthorized
	}
	return f.loginRes.User, nil
}

func (f *fakeAPI) UpdateProfile(context.Context, api.ProfileUpdate) (*models.User, error) {
	return f.updateRes, f.updateErr
}

func (f *fakeAPI) ForgotPassword(context.Context, string) (string, error) {
	return "Check your email for a reset code", f.forgotErr
}

func (f *fakeAPI) VerifyResetCode(_ context.Context, _, code string) error {
	f.verifyCodes = append(f.verifyCodes, code)
	return f.verifyErr
}

func (f *fakeAPI) ResetPassword(context.Context, string, string, string) error {
	return f.resetErr
}

func (f *fakeAPI) Holdings(context.Context) (*models.HoldingsSummary, error) {
	return f.holdings, f.fetchErr
}

func (f *fakeAPI) Orders(context.Context) ([]models.Order, error) {
	return f.orders, f.fetchErr
}

func (f *fakeAPI) Transactions(context.Context, int, models.TransactionStatus) ([]models.Transaction, error) {
	return f.txs, f.fetchErr
}

// fakeStore is an in-memory credstore.Store.
type fakeStore struct {
	saved string
}

func (f *fakeStore) Token(context.Context) (string, error) { return f.saved, nil }
func (f *fakeStore) Save(_ context.Context, token string) error {
	f.saved = token
	return nil
}
func (f *fakeStore) Clear(context.Context) error {
	f.saved = ""
	return nil
}

func testUser() *models.User {
	return &models.User{
		ID:        "u-1",
		Email:     "alice@example.org",
		FirstName: "Alice",
		LastName:  "Mansour",
		Company:   "GreenGrid",
		Emirate:   "Dubai",
		Role:      models.RoleTrader,
		Tier:      models.TierBasic,
	}
}

// newTestApp wires an App around fakes. The reader feeds a.reader for
// commands that read plain lines directly.
func newTestApp(f *fakeAPI, input string) *App {
	log := logging.NewJSON(io.Discard, "error")
	return &App{
		api:     f,
		session: session.NewManager(f, &fakeStore{}, log),
		dash:    dashboard.NewAggregator(f, log),
		log:     log,
		reader:  bufio.NewReader(strings.NewReader(input)),
	}
}

// stubPrintln redirects printlnFn into a slice for assertions.
func stubPrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(args...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// containsLine reports whether any captured line contains substr.
func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
