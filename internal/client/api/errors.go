package api

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RemoteError is a failure the backend reported itself (a well-formed
// response with success=false). Its message is surfaced to the user verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return e.Message
}
