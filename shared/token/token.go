package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultBytes is the entropy of confirmation tokens.
const DefaultBytes = 32

// Generate returns n random bytes hex-encoded (2n characters).
func Generate(n int) (string, error) {
	if n <= 0 {
		n = DefaultBytes
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
