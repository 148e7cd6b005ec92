package mfa

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

var (
	ErrNoKeys          = errors.New("mfa: key ring is empty")
	ErrKeyLength       = errors.New("mfa: key must be 32 bytes")
	ErrUnknownKey      = errors.New("mfa: unknown key version")
	ErrEmptyPlaintext  = errors.New("mfa: plaintext is empty")
	ErrShortCiphertext = errors.New("mfa: ciphertext too short")
	ErrDecrypt         = errors.New("mfa: decrypt failed")
)

// KeyRing holds AES-256 keys by version. New ciphertexts use Current; old
// versions stay so previously sealed seeds still open after rotation.
type KeyRing struct {
	Current byte
	Keys    map[byte][]byte
}

// AESGCM seals as: [key version][12-byte nonce][ciphertext+tag].
type AESGCM struct {
	ring KeyRing
}

func NewAESGCM(ring KeyRing) (*AESGCM, error) {
	if len(ring.Keys) == 0 {
		return nil, ErrNoKeys
	}
	if _, ok := ring.Keys[ring.Current]; !ok {
		return nil, fmt.Errorf("%w: current %d", ErrUnknownKey, ring.Current)
	}
	for v, k := range ring.Keys {
		if len(k) != 32 {
			return nil, fmt.Errorf("%w: version %d", ErrKeyLength, v)
		}
	}
	return &AESGCM{ring: ring}, nil
}

func (a *AESGCM) Encrypt(plaintext []byte, scope Scope) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, ErrEmptyPlaintext
	}

	gcm, err := a.gcm(a.ring.Current)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 1+gcm.NonceSize(), 1+gcm.NonceSize()+len(plaintext)+gcm.Overhead())
	out[0] = a.ring.Current
	if _, err := rand.Read(out[1:]); err != nil {
		return nil, fmt.Errorf("mfa: nonce: %w", err)
	}

	return gcm.Seal(out, out[1:], plaintext, scope.aad()), nil
}

// Decrypt reports ErrDecrypt for a wrong scope, a wrong key or tampering
// alike, so callers cannot tell them apart.
func (a *AESGCM) Decrypt(ciphertext []byte, scope Scope) ([]byte, error) {
	if len(ciphertext) < 1 {
		return nil, ErrShortCiphertext
	}

	gcm, err := a.gcm(ciphertext[0])
	if err != nil {
		return nil, err
	}

	ns := gcm.NonceSize()
	if len(ciphertext) < 1+ns+gcm.Overhead() {
		return nil, ErrShortCiphertext
	}

	plain, err := gcm.Open(nil, ciphertext[1:1+ns], ciphertext[1+ns:], scope.aad())
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// KeyVersion reports which key sealed ciphertext.
func KeyVersion(ciphertext []byte) (byte, bool) {
	if len(ciphertext) == 0 {
		return 0, false
	}
	return ciphertext[0], true
}

func (a *AESGCM) gcm(version byte) (cipher.AEAD, error) {
	key, ok := a.ring.Keys[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKey, version)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
