// Package domain holds the quote engine's core types shared across features.
package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights is returned for weight patches carrying negative values.
// It is a programmer/configuration error, not a venue failure.
var ErrInvalidWeights = errors.New("scoring weights must be non-negative")

// QuoteErrorKind is a stable, programmatically checkable failure category.
// The human-readable message may change; the kind must not.
type QuoteErrorKind string

const (
	ErrKindUnsupportedPair     QuoteErrorKind = "unsupported_pair"
	ErrKindVenueUnavailable    QuoteErrorKind = "venue_unavailable"
	ErrKindNoExchangeRate      QuoteErrorKind = "no_exchange_rate"
	ErrKindNoLiquidityData     QuoteErrorKind = "no_liquidity_data"
	ErrKindTimeout             QuoteErrorKind = "timeout"
	ErrKindInternalFault       QuoteErrorKind = "internal_fault"
	ErrKindConstraintViolation QuoteErrorKind = "constraint_violation"
	ErrKindVenueNotFound       QuoteErrorKind = "venue_not_found"
)

// QuoteError is a venue-level failure carried in-band inside a Quote. It never
// propagates as a Go error out of the engine's public API.
type QuoteError struct {
	Kind    QuoteErrorKind
	Message string
}

func (e *QuoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func messageOrDefault(msg string, defaultMsg string) string {
	if msg != "" {
		return msg
	}
	return defaultMsg
}

// Quote error constructors

func ErrUnsupportedPair(venue, fromAsset, toAsset string) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindUnsupportedPair,
		Message: fmt.Sprintf("unsupported trading pair %s/%s on %s", fromAsset, toAsset, venue),
	}
}

func ErrVenueUnavailable(venue string) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindVenueUnavailable,
		Message: venue + " temporarily unavailable",
	}
}

func ErrNoExchangeRate(fromAsset, toAsset string) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindNoExchangeRate,
		Message: fmt.Sprintf("no exchange rate available for %s/%s", fromAsset, toAsset),
	}
}

func ErrNoLiquidityData(msg string) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindNoLiquidityData,
		Message: messageOrDefault(msg, "no liquidity data for this pair"),
	}
}

func ErrTimeout(timeoutMs int64) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindTimeout,
		Message: fmt.Sprintf("quote request timeout (>%dms)", timeoutMs),
	}
}

func ErrInternalFault(msg string) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindInternalFault,
		Message: messageOrDefault(msg, "internal fault"),
	}
}

func ErrConstraintViolation(observed, limit float64) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindConstraintViolation,
		Message: fmt.Sprintf("slippage %.2f%% exceeds tolerance %.1f%%", observed, limit),
	}
}

func ErrVenueNotFound(venue string) *QuoteError {
	return &QuoteError{
		Kind:    ErrKindVenueNotFound,
		Message: "venue not registered: " + venue,
	}
}
