package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt peppers the plaintext with HMAC-SHA256 before bcrypt. The
// base64 digest is 44 bytes, which keeps any input under bcrypt's 72-byte
// ceiling while still binding the whole password.
type Bcrypt struct {
	cost   int
	pepper []byte
}

func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: []byte(pepper)}
}

func (b *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(b.prehash(plaintext), b.cost)
}

func (b *Bcrypt) Verify(hashed, plaintext string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), b.prehash(plaintext)) == nil
}

func (b *Bcrypt) prehash(plaintext string) []byte {
	mac := hmac.New(sha256.New, b.pepper)
	mac.Write([]byte(plaintext))
	sum := mac.Sum(nil)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}
