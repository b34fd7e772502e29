package centry

import "errors"

var (
	// ErrInvalidMethod is returned when a request is attempted with an HTTP
	// verb the API does not accept.
	ErrInvalidMethod = errors.New("centry: unsupported HTTP method")

	// ErrInvalidGrantResponse is returned when the token endpoint answers a
	// grant exchange with a body that is not valid JSON. The client's token
	// fields keep their previous values.
	ErrInvalidGrantResponse = errors.New("centry: token endpoint returned invalid JSON")
)
