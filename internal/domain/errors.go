package domain

import "errors"

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrNegativeAmount    = errors.New("negative amount")
	ErrSameCurrency      = errors.New("same currency")
	ErrMalformedCurrency = errors.New("malformed currency code")
	ErrFetchFailed       = errors.New("fetch failed")
	// ErrRateUnavailable is always returned wrapped together with ErrFetchFailed.
	ErrRateUnavailable = errors.New("rate unavailable")
)

// UserMessage returns the short text shown to the user for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "Please enter an amount."
	case errors.Is(err, ErrNegativeAmount):
		return "The amount must not be negative."
	case errors.Is(err, ErrMalformedNumber):
		return "Please enter a valid number for the amount."
	case errors.Is(err, ErrSameCurrency):
		return "Please choose two different currencies."
	case errors.Is(err, ErrMalformedCurrency):
		return "Please choose a valid currency."
	case errors.Is(err, ErrRateUnavailable):
		return "The exchange rate is not available right now."
	case errors.Is(err, ErrFetchFailed):
		return "Failed to fetch rate."
	default:
		return "Something went wrong."
	}
}
