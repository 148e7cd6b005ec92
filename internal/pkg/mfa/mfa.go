// Package mfa protects second-factor material: it seals TOTP seeds at rest
// and generates one-time backup codes.
package mfa

import "fmt"

// Purpose separates ciphertexts made for different uses so one can never
// be opened as the other.
type Purpose string

const (
	PurposeOTPSeed    Purpose = "otp_seed"
	PurposeOTPPending Purpose = "otp_pending"
)

// Scope is bound to a ciphertext as additional authenticated data.
type Scope struct {
	AdminID int64
	Purpose Purpose
}

func (s Scope) aad() []byte {
	return fmt.Appendf(nil, "gomotor/mfa\x00admin=%d\x00purpose=%s", s.AdminID, s.Purpose)
}

type Encryptor interface {
	Encrypt(plaintext []byte, scope Scope) ([]byte, error)
	Decrypt(ciphertext []byte, scope Scope) ([]byte, error)
}

type RecoveryCodeGenerator interface {
	Generate() ([]string, error)
}
