package model

import (
	"strings"
	"time"
)

// AccessCode represents a single-use code that unlocks one number-generation request.
type AccessCode struct {
	ID        string
	Code      string
	IsUsed    bool
	UsedAt    *time.Time // Pointer to allow for NULL
	CreatedAt time.Time
}

// NormalizeCode canonicalizes user input before lookup: codes are compared
// case-insensitively and surrounding whitespace is ignored.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
