// Package session owns the authenticated user and drives the
// login/signup/logout/profile-update/bootstrap lifecycle.
//
// A Manager is a single-writer object: there is one logical thread of
// control per user interaction, so no two session operations may be in
// flight concurrently against the same instance.
// Callers hand the Manager around by reference instead of keeping ambient
// global session state.
package session

import (
	"context"
	"fmt"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/client/credstore"
	"github.com/greengrid/rectrade/internal/logging"
	"github.com/greengrid/rectrade/internal/models"
	"github.com/greengrid/rectrade/internal/validx"
)

type Manager struct {
	api   api.Client
	creds credstore.Store
	log   logging.Logger

	user    *models.User
	loading bool
}

func NewManager(apiClient api.Client, creds credstore.Store, log logging.Logger) *Manager {
	return &Manager{api: apiClient, creds: creds, log: log.With("component", "session")}
}

// User returns the current user, or nil when unauthenticated. Non-nil iff a
// successful login/signup/bootstrap has occurred with no later
// logout/invalidation.
func (m *Manager) User() *models.User { return m.user }

func (m *Manager) IsAuthenticated() bool { return m.user != nil }

func (m *Manager) IsLoading() bool { return m.loading }

// Bootstrap restores a previous session from the stored token. It runs once
// at process start. With no stored token it returns without any remote call;
// a token the backend rejects (or any failure to validate it) is cleared so
// the next start comes up cleanly logged-out.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.loading = true
	defer func() { m.loading = false }()

	token, err := m.creds.Token(ctx)
	if err != nil {
		m.log.Error(ctx, "reading stored token", "error", err)
		return
	}
	if token == "" {
		return
	}

	m.api.SetToken(token)

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored session rejected", "error", err)
		m.api.SetToken("")
		if cerr := m.creds.Clear(ctx); cerr != nil {
			m.log.Error(ctx, "clearing stale token", "error", cerr)
		}
		return
	}

	m.user = user
	m.log.Info(ctx, "session restored", "email", user.Email, "role", user.Role)
}

// Login authenticates against the backend. On success the token is persisted
// and the user installed; on any failure the session is left unchanged and
// false is returned. The loading flag is reset on every path.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	m.loading = true
	defer func() { m.loading = false }()

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Warn(ctx, "login failed", "email", models.NormalizeEmail(email), "error", err)
		return false
	}

	return m.install(ctx, res)
}

// Signup registers a new account. Required fields are validated locally
// before any remote call; role defaults to trader. Success/failure contract
// matches Login.
func (m *Manager) Signup(ctx context.Context, req api.RegisterRequest) bool {
	m.loading = true
	defer func() { m.loading = false }()

	if req.Role == "" {
		req.Role = models.RoleTrader
	}
	if err := validx.Struct(req); err != nil {
		m.log.Warn(ctx, "signup rejected locally", "error", err)
		return false
	}

	res, err := m.api.Register(ctx, req)
	if err != nil {
		m.log.Warn(ctx, "signup failed", "email", models.NormalizeEmail(req.Email), "error", err)
		return false
	}

	return m.install(ctx, res)
}

// install commits an auth result: all-or-nothing. A response missing its
// token or user, or a token that cannot be persisted, leaves the session
// fully unauthenticated.
func (m *Manager) install(ctx context.Context, res *api.AuthResult) bool {
	if res == nil || res.Token == "" || res.User == nil {
		m.log.Error(ctx, "auth response incomplete")
		m.api.SetToken("")
		return false
	}

	if err := m.creds.Save(ctx, res.Token); err != nil {
		m.log.Error(ctx, "persisting token", "error", err)
		m.api.SetToken("")
		return false
	}

	m.api.SetToken(res.Token)
	m.user = res.User
	m.log.Info(ctx, "authenticated", "email", res.User.Email, "role", res.User.Role)
	return true
}

// Logout de-authenticates. The remote call is best-effort: whatever its
// outcome, the stored token and in-memory user are cleared.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn(ctx, "remote logout failed", "error", err)
	}

	m.api.SetToken("")
	if err := m.creds.Clear(ctx); err != nil {
		m.log.Error(ctx, "clearing stored token", "error", err)
	}
	m.user = nil
}

// UpdateProfile applies a partial profile mutation. A no-op without an
// active user. On success the server-confirmed user replaces the in-memory
// one wholesale; on failure the in-memory user is untouched.
func (m *Manager) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) error {
	if m.user == nil {
		return nil
	}

	user, err := m.api.UpdateProfile(ctx, upd)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}

	m.user = user
	return nil
}
