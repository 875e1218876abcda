package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New returns a random 128-bit id in hex.
func New() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// RequestID keeps a sane caller-supplied id and otherwise mints one.
func RequestID(incoming string) string {
	if n := len(incoming); n > 0 && n <= 64 && isToken(incoming) {
		return incoming
	}
	out, err := New()
	if err != nil {
		return "unknown"
	}
	return out
}

func isToken(v string) bool {
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
