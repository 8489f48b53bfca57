package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	envKey = "SHARE_TOKEN_KEY"

	// Development fallback only; deployments set SHARE_TOKEN_KEY.
	devKey = "0Yp3kIab0VwkUxSn3F4x0C1h1yWb7vKQ6Zg0m8tR1cA="
)

func keyBytes() ([]byte, error) {
	encoded := os.Getenv(envKey)
	if encoded == "" {
		encoded = devKey
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// CreateShareToken seals a studio/service pair into an opaque URL-safe token
// that the storefront embeds in booking deep links.
func CreateShareToken(studioID string, serviceID string) (string, error) {
	plaintext := []byte(studioID + ":" + serviceID)

	key, err := keyBytes()
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

// ParseShareToken reverses CreateShareToken, returning (studioID, serviceID).
func ParseShareToken(token string) (string, string, error) {
	key, err := keyBytes()
	if err != nil {
		return "", "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", "", err
	}

	nonceSize := aesgcm.NonceSize()
	if len(data) < nonceSize {
		return "", "", fmt.Errorf("token too short")
	}
	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	pt, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(string(pt), ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid token format")
	}

	return parts[0], parts[1], nil
}
