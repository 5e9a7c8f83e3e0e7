// Package common defines shared constants and small helpers used across the
// rectrade client layers.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a client-generated id for request correlation.
const RequestIDHeaderName = "X-Request-ID"

// TokenStorageKey is the well-known key under which the session token is
// persisted. Absence of the key means logged-out.
const TokenStorageKey = "session_token"
