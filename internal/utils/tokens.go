package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewAccessToken returns an opaque hex capability token. Used for proposal
// client links, firm-offer speaker links and refresh tokens; the token is
// the authorization, there is no identity behind it.
func NewAccessToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 bits
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
