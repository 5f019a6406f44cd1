package model

import "errors"

var (
	// ErrUnknownLanguage is returned when a language tag has no canonical two-letter code.
	// It usually means the classifier and the lookup table are out of sync.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrEmptyAccountID is returned when account operations are called without an ID
	ErrEmptyAccountID = errors.New("empty account id")
	// ErrInvalidConfig is returned when config values are out of their allowed ranges
	ErrInvalidConfig = errors.New("invalid config")
	// ErrEmptyLocale is returned when an account locale update has no locale
	ErrEmptyLocale = errors.New("empty locale")
)

// ErrorResponse is the JSON body of failed HTTP requests
type ErrorResponse struct {
	Message string `json:"error"`
}
