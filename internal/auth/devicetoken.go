package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewDeviceToken mints a 32-hex-character rotating device token
func NewDeviceToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate device token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
