package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/greengrid/rectrade/internal/common"
	"github.com/greengrid/rectrade/internal/models"
)

// Transport tuning. Per-call timeout matches the platform gateway's own
// upstream deadline.
const (
	defaultCallTimeout = 12 * time.Second
	maxRetries         = 3
	retryWaitMin       = 500 * time.Millisecond
	retryWaitMax       = 4 * time.Second
)

// envelope is the JSON response wrapper every backend endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *models.User    `json:"user"`
	Data    json.RawMessage `json:"data"`
}

// HTTPClient implements Client over the platform's JSON API. Safe for
// concurrent use: the token is guarded, and retries never reuse a request
// body.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]

	// Backoff bounds between retry attempts. Overridable in tests.
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	// callTimeout applies when the caller's context has no deadline.
	callTimeout time.Duration

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "https://api.rectrade.ae".
func NewHTTPClient(baseURL string) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "identity-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= 5 && float64(c.TotalFailures)/float64(c.Requests) >= 0.5
		},
	})

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &HTTPClient{
		baseURL:      baseURL,
		http:         &http.Client{Transport: transport},
		breaker:      breaker,
		retryWaitMin: retryWaitMin,
		retryWaitMax: retryWaitMax,
		callTimeout:  defaultCallTimeout,
	}
}

// SetCallTimeout overrides the deadline applied to calls whose context has
// none of its own. Zero restores the default.
func (c *HTTPClient) SetCallTimeout(d time.Duration) {
	if d <= 0 {
		d = defaultCallTimeout
	}
	c.callTimeout = d
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// newRequest builds a request with auth and correlation headers. The body is
// passed as raw bytes so every retry attempt gets a fresh reader.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if t := c.currentToken(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+t)
	}
	return req, nil
}

// execute runs the request through the circuit breaker with retries on
// transport errors and 5xx responses.
func (c *HTTPClient) execute(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		var resp *http.Response
		var err error

		for attempt := 0; attempt <= maxRetries; attempt++ {
			if attempt > 0 {
				wait := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
				if wait > c.retryWaitMax {
					wait = c.retryWaitMax
				}
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}

			var req *http.Request
			req, err = c.newRequest(ctx, method, path, payload)
			if err != nil {
				return nil, err
			}

			resp, err = c.http.Do(req)
			if err != nil {
				if isRetryable(err) && attempt < maxRetries {
					continue
				}
				return nil, err
			}

			if resp.StatusCode >= 500 {
				_ = resp.Body.Close()
				err = fmt.Errorf("server returned %d", resp.StatusCode)
				if attempt < maxRetries {
					continue
				}
				return nil, err
			}

			return resp, nil
		}

		return nil, err
	})

	if err != nil {
		return nil, c.mapError(err)
	}
	return resp, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// mapError converts transport-level failures into the package's taxonomy,
// mirroring how gRPC status codes map to sentinel errors.
func (c *HTTPClient) mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: circuit open", ErrUnavailable)
	default:
		// No response means "no response": transport failures and timeouts
		// are treated identically to an explicit server failure.
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// call performs a round trip and decodes the response envelope. A decoded
// envelope with success=false becomes a *RemoteError; 401/403 become
// ErrUnauthorized regardless of body.
func (c *HTTPClient) call(ctx context.Context, method, path string, body any) (*envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	resp, err := c.execute(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	if !env.Success {
		return nil, &RemoteError{Message: env.Message}
	}
	return &env, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": models.NormalizeEmail(email), "password": password}
	env, err := c.call(ctx, http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return &AuthResult{Token: env.Token, User: env.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = models.NormalizeEmail(req.Email)
	env, err := c.call(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	c.SetToken(env.Token)
	return &AuthResult{Token: env.Token, User: env.User}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/api/auth/logout", nil)
	return err
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	env, err := c.call(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("%w: response missing user", ErrUnavailable)
	}
	return env.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	env, err := c.call(ctx, http.MethodPut, "/api/auth/profile", upd)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("%w: response missing user", ErrUnavailable)
	}
	return env.User, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": models.NormalizeEmail(email)}
	env, err := c.call(ctx, http.MethodPost, "/api/auth/forgot-password", body)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) VerifyResetCode(ctx context.Context, email, code string) error {
	body := map[string]string{"email": models.NormalizeEmail(email), "code": code}
	_, err := c.call(ctx, http.MethodPost, "/api/auth/verify-reset-code", body)
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{
		"email":       models.NormalizeEmail(email),
		"code":        code,
		"newPassword": newPassword,
	}
	_, err := c.call(ctx, http.MethodPost, "/api/auth/reset-password", body)
	return err
}

func (c *HTTPClient) Holdings(ctx context.Context) (*models.HoldingsSummary, error) {
	env, err := c.call(ctx, http.MethodGet, "/api/account/holdings", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		Summary models.HoldingsSummary `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed holdings payload: %v", ErrUnavailable, err)
	}
	return &data.Summary, nil
}

func (c *HTTPClient) Orders(ctx context.Context) ([]models.Order, error) {
	env, err := c.call(ctx, http.MethodGet, "/api/account/orders", nil)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, fmt.Errorf("%w: malformed orders payload: %v", ErrUnavailable, err)
	}
	return orders, nil
}

func (c *HTTPClient) Transactions(ctx context.Context, lookbackDays int, status models.TransactionStatus) ([]models.Transaction, error) {
	q := url.Values{}
	q.Set("lookbackDays", strconv.Itoa(lookbackDays))
	if status != "" {
		q.Set("status", string(status))
	}

	env, err := c.call(ctx, http.MethodGet, "/api/account/transactions?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := json.Unmarshal(env.Data, &txs); err != nil {
		return nil, fmt.Errorf("%w: malformed transactions payload: %v", ErrUnavailable, err)
	}
	return txs, nil
}
