package sharepoint

import (
	"errors"
	"net/http"
)

// Error types for SharePoint REST and Azure AD responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("sharepoint: unauthorised")

	// ErrForbidden indicates the account lacks permission for the requested resource.
	ErrForbidden = errors.New("sharepoint: forbidden")

	// ErrNotFound indicates the requested site, list or field does not exist.
	ErrNotFound = errors.New("sharepoint: not found")

	// ErrRateLimited indicates the request was throttled.
	ErrRateLimited = errors.New("sharepoint: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("sharepoint: bad request")

	// ErrServerError indicates a server-side error.
	ErrServerError = errors.New("sharepoint: server error")

	// ErrUnexpectedStatus indicates a status code with no more specific mapping.
	ErrUnexpectedStatus = errors.New("sharepoint: unexpected status")

	// ErrRealmUnknown indicates Azure AD does not know the login's domain.
	ErrRealmUnknown = errors.New("sharepoint: user realm unknown")

	// ErrTokenRejected indicates Azure AD refused to issue a token.
	ErrTokenRejected = errors.New("sharepoint: token request rejected")
)

// WrapError converts an HTTP status code to an appropriate error.
// Returns nil for 2xx codes.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		if statusCode >= 200 && statusCode < 300 {
			return nil
		}
		return ErrUnexpectedStatus
	}
}

// IsRateLimited checks if the status code indicates throttling.
// SharePoint uses 503 as well as 429 when a farm is under load.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode == http.StatusServiceUnavailable
}
