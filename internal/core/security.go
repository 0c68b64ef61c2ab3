// AngelaMos | 2026
// security.go

package core

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	TemporaryPasswordLength = 12
	temporaryPasswordChars  = "abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
)

// GenerateRefreshToken returns 32 random bytes, URL-safe encoded. Only
// its HashToken digest is ever stored.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateTemporaryPassword returns a random password drawn uniformly
// from the provisioning alphabet.
func GenerateTemporaryPassword(length int) (string, error) {
	if length <= 0 {
		length = TemporaryPasswordLength
	}

	limit := big.NewInt(int64(len(temporaryPasswordChars)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = temporaryPasswordChars[n.Int64()]
	}

	return string(out), nil
}

func SignHMAC(key []byte, payload string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyHMAC(key []byte, payload, signature string) bool {
	expected := SignHMAC(key, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
