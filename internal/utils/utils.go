// Package utils contains small helpers shared across services
package utils

// Truncate string to length runes, adding ellipsis if it was truncated
func Truncate(s string, length int) string {
	runes := []rune(s)
	if length < 0 {
		length = 0
	}
	if length >= len(runes) {
		return s
	}
	return string(runes[:length]) + "..."
}
