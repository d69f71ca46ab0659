package fetch

import "errors"

var (
	// ErrUnsupportedScheme indicates a scheme other than http.
	ErrUnsupportedScheme = errors.New("scheme is not supported")
	// ErrAuthUnsupported indicates the URL carries a username or password.
	ErrAuthUnsupported = errors.New("authentication is not supported")
	// ErrInvalidPort indicates a port outside 1-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrStatus indicates the server replied with a status other than 200.
	ErrStatus = errors.New("HTTP request failed")
	// ErrCircuitOpen indicates requests to the host are suspended after
	// repeated failures.
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrBodyClosed indicates Save was called after Close.
	ErrBodyClosed = errors.New("response body already closed")
)
