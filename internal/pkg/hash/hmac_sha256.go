package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 is deterministic, so it suits lookup keys such as lead
// fingerprints where the same input must map to the same digest.
type HMACSHA256 struct {
	secret []byte
}

func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the lowercase hex digest. It never fails.
func (h *HMACSHA256) Hash(plaintext string) ([]byte, error) {
	return h.sum(plaintext), nil
}

func (h *HMACSHA256) Verify(hashed, plaintext string) bool {
	return hmac.Equal([]byte(hashed), h.sum(plaintext))
}

func (h *HMACSHA256) sum(plaintext string) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(plaintext))
	return hex.AppendEncode(nil, mac.Sum(nil))
}
