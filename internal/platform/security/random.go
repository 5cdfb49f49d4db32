package security

import (
	"crypto/rand"
	"fmt"
)

// RandomDigits returns an n-digit numeric string, zero-padded.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	max := 1
	for i := 0; i < n; i++ {
		max *= 10
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	// mod reduction is good enough for short-lived codes
	val := 0
	for _, b := range buf {
		val = (val<<8 + int(b)) % max
	}
	return fmt.Sprintf("%0*d", n, val), nil
}
