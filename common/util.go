package common

import (
	"github.com/google/uuid"
)

// GenUUID generates a new uuid string.
func GenUUID() string {
	return uuid.New().String()
}

// Truncate shortens s to at most max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
