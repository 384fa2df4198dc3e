package threeds

import "errors"

var (
	// ErrInvalidEncoding is returned when a request parameter is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("request parameter is not valid UTF-8")
	// ErrInvalidACSURL is returned when the ACS URL is not an absolute http(s) URL.
	ErrInvalidACSURL = errors.New("ACS URL must be an absolute http(s) URL")
	// ErrInvalidCallbackURL is returned when the callback URL is not an absolute http(s) URL.
	ErrInvalidCallbackURL = errors.New("callback URL must be an absolute http(s) URL")
	// ErrMissingParameter is returned when a mandatory request parameter is empty.
	ErrMissingParameter = errors.New("mandatory request parameter is empty")
	// ErrNilView is returned when a coordinator is created without a view.
	ErrNilView = errors.New("view is nil")
)
