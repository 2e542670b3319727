package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SessionIDBytes is the amount of randomness behind each session id.
const SessionIDBytes = 32

// NewSessionID returns a hex-encoded random identifier from crypto/rand.
func NewSessionID() (string, error) {
	b := make([]byte, SessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
