// Package hash hashes secrets that are stored and later verified: admin
// passwords (bcrypt), 2FA backup codes (argon2id) and lookup keys (HMAC).
package hash

// Hash produces an encoded digest of a plaintext and checks a plaintext
// against a stored digest.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
