package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// GenerateAccessToken returns a high-entropy random token encoded as
// unpadded base32. 32 bytes gives 256 bits of entropy.
func GenerateAccessToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes), nil
}
