package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found or not visible to the caller
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a concurrent write could not be applied
	ErrConflict = errors.New("resource conflict")

	// ErrForbidden is returned when the caller may see a resource but not change it
	ErrForbidden = errors.New("permission denied")

	// ErrShareExpired is returned when a share link is past its expiry
	ErrShareExpired = errors.New("share link has expired")

	// ErrAIUnavailable is returned when AI estimation is disabled or cannot accept work
	ErrAIUnavailable = errors.New("ai estimation unavailable")

	// ErrUploadRejected is returned when an uploaded plan fails type or size checks
	ErrUploadRejected = errors.New("upload rejected")

	// ErrMarketDataUnavailable is returned when the market-rate source is disabled
	ErrMarketDataUnavailable = errors.New("market data source not available")
)

// invalidf wraps ErrInvalidInput with detail
func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translate maps repository errors onto service errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}
