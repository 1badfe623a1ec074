package errors

import (
	"errors"
	"fmt"
)

// Common error types for the talent API client
var (
	// Credential errors
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrPartialCredential   = errors.New("credential pair must hold both access and refresh tokens")
	ErrNoCredential        = errors.New("no credential stored")

	// Storage errors
	ErrStoreOperationFailed = errors.New("session store operation failed")
	ErrDecryptFailed        = errors.New("unable to decrypt stored session")

	// Request errors
	ErrInvalidPath = errors.New("invalid request path")
	ErrInvalidID   = errors.New("invalid resource id")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
