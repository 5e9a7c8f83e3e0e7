package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengrid/rectrade/internal/client/api"
	"github.com/greengrid/rectrade/internal/logging"
	"github.com/greengrid/rectrade/internal/models"
)

// ---- fake api client ----

type fakeAPI struct {
	token string

	loginRes   *api.AuthResult
	loginErr   error
	loginCalls int

	registerRes   *api.AuthResult
	registerErr   error
	registerCalls int
	lastRegister  api.RegisterRequest

	logoutErr   error
	logoutCalls int

	currentUserRes   *models.User
	currentUserErr   error
	currentUserCalls int

	updateRes   *models.User
	updateErr   error
	updateCalls int
}

func (f *fakeAPI) Close() error          { return nil }
func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.AuthResult, error) {
	f.loginCalls++
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, req api.RegisterRequest) (*api.AuthResult, error) {
	f.registerCalls++
	f.lastRegister = req
	return f.registerRes, f.registerErr
}

func (f *fakeAPI) Logout(_ context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) CurrentUser(_ context.Context) (*models.User, error) {
	f.currentUserCalls++
	return f.currentUserRes, f.currentUserErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, _ api.ProfileUpdate) (*models.User, error) {
	f.updateCalls++
	return f.updateRes, f.updateErr
}

func (f *fakeAPI) ForgotPassword(_ context.Context, _ string) (string, error) { return "", nil }
func (f *fakeAPI) VerifyResetCode(_ context.Context, _, _ string) error       { return nil }
func (f *fakeAPI) ResetPassword(_ context.Context, _, _, _ string) error      { return nil }
func (f *fakeAPI) Holdings(_ context.Context) (*models.HoldingsSummary, error) {
	return nil, nil
}
func (f *fakeAPI) Orders(_ context.Context) ([]models.Order, error) { return nil, nil }
func (f *fakeAPI) Transactions(_ context.Context, _ int, _ models.TransactionStatus) ([]models.Transaction, error) {
	return nil, nil
}

// ---- fake credential store ----

type fakeStore struct {
	token    string
	tokenErr error
	saveErr  error
	clearErr error

	saveCalls  int
	clearCalls int
}

func (f *fakeStore) Token(_ context.Context) (string, error) { return f.token, f.tokenErr }

func (f *fakeStore) Save(_ context.Context, token string) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	return nil
}

func (f *fakeStore) Clear(_ context.Context) error {
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token = ""
	return nil
}

func newManager(apiC *fakeAPI, store *fakeStore) *Manager {
	return NewManager(apiC, store, logging.NewJSON(io.Discard, "error"))
}

func trader() *models.User {
	return &models.User{ID: "u-1", Email: "t@x.ae", Role: models.RoleTrader}
}

// ---- bootstrap ----

func TestBootstrap_NoStoredToken_NoRemoteCall(t *testing.T) {
	apiC := &fakeAPI{}
	m := newManager(apiC, &fakeStore{})

	m.Bootstrap(context.Background())

	assert.Nil(t, m.User())
	assert.False(t, m.IsLoading())
	assert.Zero(t, apiC.currentUserCalls)
}

func TestBootstrap_RejectedToken_ClearsStore(t *testing.T) {
	apiC := &fakeAPI{currentUserErr: api.ErrUnauthorized}
	store := &fakeStore{token: "stale"}
	m := newManager(apiC, store)

	m.Bootstrap(context.Background())

	assert.Nil(t, m.User())
	assert.Empty(t, store.token)
	assert.Empty(t, apiC.token)
	assert.False(t, m.IsLoading())
}

func TestBootstrap_ValidToken_RestoresSession(t *testing.T) {
	apiC := &fakeAPI{currentUserRes: trader()}
	m := newManager(apiC, &fakeStore{token: "tok"})

	m.Bootstrap(context.Background())

	require.NotNil(t, m.User())
	assert.Equal(t, "u-1", m.User().ID)
	assert.Equal(t, "tok", apiC.token)
	assert.True(t, m.IsAuthenticated())
}

// ---- login ----

func TestLogin_Success(t *testing.T) {
	apiC := &fakeAPI{loginRes: &api.AuthResult{Token: "tok-1", User: trader()}}
	store := &fakeStore{}
	m := newManager(apiC, store)

	ok := m.Login(context.Background(), "t@x.ae", "secret1")

	assert.True(t, ok)
	assert.Equal(t, "tok-1", store.token)
	require.NotNil(t, m.User())
	assert.False(t, m.IsLoading())
}

func TestLogin_RemoteFailure_LeavesSessionUnchanged(t *testing.T) {
	apiC := &fakeAPI{loginErr: &api.RemoteError{Message: "invalid credentials"}}
	store := &fakeStore{}
	m := newManager(apiC, store)

	ok := m.Login(context.Background(), "t@x.ae", "wrong")

	assert.False(t, ok)
	assert.Nil(t, m.User())
	assert.Zero(t, store.saveCalls)
	assert.False(t, m.IsLoading())
}

func TestLogin_TransportFailure_ReturnsFalse(t *testing.T) {
	apiC := &fakeAPI{loginErr: api.ErrUnavailable}
	m := newManager(apiC, &fakeStore{})

	assert.False(t, m.Login(context.Background(), "t@x.ae", "secret1"))
	assert.Nil(t, m.User())
}

func TestLogin_IncompleteResponse_TreatedAsFailure(t *testing.T) {
	// Token but no user: the session must not end up half-authenticated.
	apiC := &fakeAPI{loginRes: &api.AuthResult{Token: "tok-1"}}
	store := &fakeStore{}
	m := newManager(apiC, store)

	assert.False(t, m.Login(context.Background(), "t@x.ae", "secret1"))
	assert.Nil(t, m.User())
	assert.Zero(t, store.saveCalls)
	assert.Empty(t, apiC.token)
}

func TestLogin_TokenPersistFailure_RollsBack(t *testing.T) {
	apiC := &fakeAPI{loginRes: &api.AuthResult{Token: "tok-1", User: trader()}}
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := newManager(apiC, store)

	assert.False(t, m.Login(context.Background(), "t@x.ae", "secret1"))
	assert.Nil(t, m.User())
	assert.Empty(t, apiC.token)
}

// ---- signup ----

func TestSignup_DefaultsRoleToTrader(t *testing.T) {
	apiC := &fakeAPI{registerRes: &api.AuthResult{Token: "tok", User: trader()}}
	m := newManager(apiC, &fakeStore{})

	ok := m.Signup(context.Background(), api.RegisterRequest{
		Email:     "new@x.ae",
		Password:  "secret1",
		FirstName: "Noora",
		LastName:  "Hassan",
		Company:   "SolarCo",
		Emirate:   "Dubai",
	})

	assert.True(t, ok)
	assert.Equal(t, models.RoleTrader, apiC.lastRegister.Role)
}

func TestSignup_MissingFields_RejectedLocally(t *testing.T) {
	apiC := &fakeAPI{}
	m := newManager(apiC, &fakeStore{})

	ok := m.Signup(context.Background(), api.RegisterRequest{Email: "new@x.ae", Password: "secret1"})

	assert.False(t, ok)
	assert.Zero(t, apiC.registerCalls)
}

func TestSignup_KeepsExplicitRole(t *testing.T) {
	apiC := &fakeAPI{registerRes: &api.AuthResult{Token: "tok", User: trader()}}
	m := newManager(apiC, &fakeStore{})

	ok := m.Signup(context.Background(), api.RegisterRequest{
		Email:     "owner@x.ae",
		Password:  "secret1",
		FirstName: "Omar",
		LastName:  "Saeed",
		Company:   "WindCo",
		Emirate:   "Sharjah",
		Role:      models.RoleFacilityOwner,
	})

	assert.True(t, ok)
	assert.Equal(t, models.RoleFacilityOwner, apiC.lastRegister.Role)
}

// ---- logout ----

func TestLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	apiC := &fakeAPI{
		loginRes:  &api.AuthResult{Token: "tok-1", User: trader()},
		logoutErr: api.ErrUnavailable,
	}
	store := &fakeStore{}
	m := newManager(apiC, store)
	require.True(t, m.Login(context.Background(), "t@x.ae", "secret1"))

	m.Logout(context.Background())

	assert.Nil(t, m.User())
	assert.Empty(t, store.token)
	assert.Empty(t, apiC.token)
	assert.Equal(t, 1, apiC.logoutCalls)
}

// ---- profile update ----

func TestUpdateProfile_NoUser_NoRemoteCall(t *testing.T) {
	apiC := &fakeAPI{}
	m := newManager(apiC, &fakeStore{})

	require.NoError(t, m.UpdateProfile(context.Background(), api.ProfileUpdate{}))
	assert.Zero(t, apiC.updateCalls)
}

func TestUpdateProfile_FailureLeavesUserUntouched(t *testing.T) {
	apiC := &fakeAPI{
		loginRes:  &api.AuthResult{Token: "tok", User: trader()},
		updateErr: &api.RemoteError{Message: "company name taken"},
	}
	m := newManager(apiC, &fakeStore{})
	require.True(t, m.Login(context.Background(), "t@x.ae", "secret1"))

	company := "NewCo"
	err := m.UpdateProfile(context.Background(), api.ProfileUpdate{Company: &company})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "company name taken")
	assert.Equal(t, "u-1", m.User().ID)
}

func TestUpdateProfile_SuccessReplacesUserWholesale(t *testing.T) {
	updated := trader()
	updated.Company = "NewCo"
	apiC := &fakeAPI{
		loginRes:  &api.AuthResult{Token: "tok", User: trader()},
		updateRes: updated,
	}
	m := newManager(apiC, &fakeStore{})
	require.True(t, m.Login(context.Background(), "t@x.ae", "secret1"))

	company := "NewCo"
	require.NoError(t, m.UpdateProfile(context.Background(), api.ProfileUpdate{Company: &company}))
	assert.Equal(t, "NewCo", m.User().Company)
}
