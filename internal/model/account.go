package model

import "time"

// Account holds per-account language preferences
type Account struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale"` // preferred locale, may be empty
	UpdatedAt time.Time `json:"updated_at"`
}

// HasLocale checks if the account has a preferred locale
func (a *Account) HasLocale() bool {
	return a != nil && a.Locale != ""
}
