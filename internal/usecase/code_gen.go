package usecase

import (
	"crypto/rand"
	"io"
)

const (
	accessCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	accessCodeLength = 8
)

// generateAccessCode creates a random, human-typable access code.
// Format: 8 characters from A-Z0-9, e.g. "K4TZ09QH".
func generateAccessCode() (string, error) {
	buffer := make([]byte, accessCodeLength)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}
	for i := range buffer {
		buffer[i] = accessCodeChars[int(buffer[i])%len(accessCodeChars)]
	}
	return string(buffer), nil
}
