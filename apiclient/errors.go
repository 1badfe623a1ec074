package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
)

var (
	// ErrRefreshFailed means the refresh token was rejected; the session has been signed out
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrRequestFailed means the original call failed in transport or with a non-2xx status
	ErrRequestFailed = errors.New("request failed")
	// ErrUnsupportedMethod is returned for methods other than GET, POST, PUT, PATCH and DELETE
	ErrUnsupportedMethod = errors.New("unsupported method")
)

// RefreshFailedError is returned when the stored credential could not be renewed.
// Status is zero when the refresh call never got a response.
type RefreshFailedError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *RefreshFailedError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", ErrRefreshFailed, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", ErrRefreshFailed, e.Status)
	default:
		return ErrRefreshFailed.Error()
	}
}

// Unwrap always matches ErrRefreshFailed and apperrors.ErrTokenExpired, and
// apperrors.ErrInvalidRefreshToken when the server rejected the refresh token.
func (e *RefreshFailedError) Unwrap() []error {
	errs := []error{ErrRefreshFailed, apperrors.ErrTokenExpired}
	if e.Status == http.StatusBadRequest || e.Status == http.StatusUnauthorized {
		errs = append(errs, apperrors.ErrInvalidRefreshToken)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// RequestFailedError carries the outcome of a failed original request verbatim
type RequestFailedError struct {
	Method string
	Path   string
	Status int
	Header http.Header
	Body   []byte
	Err    error
}

func (e *RequestFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, ErrRequestFailed, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: status %d", e.Method, e.Path, ErrRequestFailed, e.Status)
}

// Unwrap also matches apperrors.ErrNotFound for a 404 and apperrors.ErrInternal
// for any 5xx status.
func (e *RequestFailedError) Unwrap() []error {
	errs := []error{ErrRequestFailed}
	switch {
	case e.Status == http.StatusNotFound:
		errs = append(errs, apperrors.ErrNotFound)
	case e.Status >= http.StatusInternalServerError:
		errs = append(errs, apperrors.ErrInternal)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none
func StatusCode(err error) int {
	var requestErr *RequestFailedError
	if errors.As(err, &requestErr) {
		return requestErr.Status
	}
	var refreshErr *RefreshFailedError
	if errors.As(err, &refreshErr) {
		return refreshErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
