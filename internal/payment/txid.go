package payment

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

const txIDBytes = 32

var txIDPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// NewTransactionID returns a synthetic 64-character lowercase hex hash
func NewTransactionID() string {
	b := make([]byte, txIDBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}

// IsSyntheticTransactionID reports whether id has the synthetic hash shape
func IsSyntheticTransactionID(id string) bool {
	return txIDPattern.MatchString(id)
}
