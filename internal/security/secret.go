// Package security generates random secrets for operators.
package security

import (
	"crypto/rand"
	"errors"
)

const (
	// SecretKeyLength leaves headroom over the 32 characters SECRET_KEY needs.
	SecretKeyLength = 48
	secretAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var (
	ErrInvalidLength   = errors.New("length must be positive")
	ErrInvalidAlphabet = errors.New("alphabet must hold 1 to 256 characters")
)

// RandomString draws length characters from alphabet using crypto/rand.
// Bytes that would bias the modulo are rejected and redrawn.
func RandomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}
	size := len(alphabet)
	if size == 0 || size > 256 {
		return "", ErrInvalidAlphabet
	}

	limit := 256 - 256%size
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%size])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

func NewSecretKey() (string, error) {
	return RandomString(SecretKeyLength, secretAlphabet)
}
