// Package api defines the contract between the rectrade client core and the
// remote identity/trading service, plus an HTTP implementation of it. The
// core depends only on the Client interface and the error taxonomy in
// errors.go; the wire format is an implementation detail.
package api

import (
	"context"

	"github.com/greengrid/rectrade/internal/models"
)

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string
	User  *models.User
}

// RegisterRequest carries the fields required to create an account.
// Validation tags are enforced locally before the request is sent.
type RegisterRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Company   string      `json:"company" validate:"required"`
	Emirate   string      `json:"emirate" validate:"required"`
	Role      models.Role `json:"role,omitempty"`
}

// ProfileUpdate is a partial profile mutation. Nil fields are omitted from
// the request and left unchanged by the server.
type ProfileUpdate struct {
	FirstName   *string             `json:"firstName,omitempty"`
	LastName    *string             `json:"lastName,omitempty"`
	Company     *string             `json:"company,omitempty"`
	Emirate     *string             `json:"emirate,omitempty"`
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

// Client is the remote call surface the core depends on.
//
// Contract:
//   - Methods return *RemoteError for failures the backend reported itself,
//     ErrUnauthorized for rejected credentials/tokens, and ErrUnavailable
//     (possibly wrapped) when no usable response was obtained.
//   - SetToken installs the bearer token attached to subsequent calls; an
//     empty string detaches it. Login and Register install their token
//     implicitly on success.
//   - All methods honor context cancellation/timeouts.
type Client interface {
	Close() error
	SetToken(token string)

	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error)

	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error

	Holdings(ctx context.Context) (*models.HoldingsSummary, error)
	Orders(ctx context.Context) ([]models.Order, error)
	Transactions(ctx context.Context, lookbackDays int, status models.TransactionStatus) ([]models.Transaction, error)
}
