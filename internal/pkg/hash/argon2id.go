package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var errArgon2Format = errors.New("hash: malformed argon2id digest")

// Argon2idParams tunes cost. Zero fields take the defaults below.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// Argon2id emits PHC strings: $argon2id$v=19$m=..,t=..,p=..$salt$key.
type Argon2id struct {
	p      Argon2idParams
	pepper string
}

func NewArgon2id(pepper string) *Argon2id {
	return NewArgon2idWithParams(pepper, Argon2idParams{})
}

func NewArgon2idWithParams(pepper string, p Argon2idParams) *Argon2id {
	if p.MemoryKiB == 0 {
		p.MemoryKiB = 32 * 1024
	}
	if p.Iterations == 0 {
		p.Iterations = 3
	}
	if p.Parallelism == 0 {
		p.Parallelism = 2
	}
	if p.SaltLen == 0 {
		p.SaltLen = 16
	}
	if p.KeyLen == 0 {
		p.KeyLen = 32
	}
	return &Argon2id{p: p, pepper: pepper}
}

func (a *Argon2id) Hash(plaintext string) ([]byte, error) {
	salt := make([]byte, a.p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("hash: read salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext+a.pepper), salt, a.p.Iterations, a.p.MemoryKiB, a.p.Parallelism, a.p.KeyLen)

	return fmt.Appendf(nil, "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.p.MemoryKiB, a.p.Iterations, a.p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes with the parameters recorded in hashed, so digests
// made under older settings keep verifying.
func (a *Argon2id) Verify(hashed, plaintext string) bool {
	if plaintext == "" {
		return false
	}

	p, salt, want, err := parseArgon2id(hashed)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(plaintext+a.pepper), salt, p.Iterations, p.MemoryKiB, p.Parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1
}

func parseArgon2id(s string) (p Argon2idParams, salt, key []byte, err error) {
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, errArgon2Format
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errArgon2Format
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, errArgon2Format
	}
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, nil, nil, errArgon2Format
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(key) == 0 {
		return p, nil, nil, errArgon2Format
	}

	return p, salt, key, nil
}
