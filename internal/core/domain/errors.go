package domain

import "errors"

// Validation errors raised before any remote call is made.
var (
	// ErrInvalidDisplayFormat indicates a format outside Unspecified/Disabled/Relative.
	ErrInvalidDisplayFormat = errors.New("invalid display format")

	// ErrInvalidSiteURL indicates the site address is empty or not an absolute https URL.
	ErrInvalidSiteURL = errors.New("invalid site url")

	// ErrCredentialsRequired indicates no credential was supplied and none could be
	// acquired without an interactive terminal.
	ErrCredentialsRequired = errors.New("credentials required")
)

// Stage errors. Every failure returned by the updater wraps exactly one of these,
// so callers can tell where the run stopped with errors.Is.
var (
	// ErrAuthentication indicates the credential was rejected or the identity
	// provider lookup failed before a session existed.
	ErrAuthentication = errors.New("authentication failed")

	// ErrConnection indicates the site was unreachable or did not resolve to a web.
	ErrConnection = errors.New("connection failed")

	// ErrRemoteQuery indicates a list or field collection failed to load.
	ErrRemoteQuery = errors.New("remote query failed")

	// ErrRemoteWrite indicates a field update failed to commit.
	ErrRemoteWrite = errors.New("remote write failed")
)
