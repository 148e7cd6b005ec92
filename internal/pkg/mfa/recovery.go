package mfa

import (
	"crypto/rand"
	"strings"
)

// recoveryAlphabet drops 0/O and 1/I/L so codes survive being read aloud
// or retyped from paper.
const recoveryAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// RecoveryCodeCount is how many backup codes an admin receives at once.
const RecoveryCodeCount = 10

// RecoveryCode yields XXXX-XXXX-XXXX codes.
type RecoveryCode struct{}

func NewRecoveryCode() *RecoveryCode {
	return &RecoveryCode{}
}

func (*RecoveryCode) Generate() ([]string, error) {
	seen := make(map[string]struct{}, RecoveryCodeCount)
	out := make([]string, 0, RecoveryCodeCount)

	for len(out) < RecoveryCodeCount {
		code, err := recoveryCode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}

	return out, nil
}

// recoveryCode draws 12 symbols by rejection sampling so every symbol of
// the alphabet is equally likely.
func recoveryCode() (string, error) {
	const limit = 256 - 256%len(recoveryAlphabet)

	code := make([]byte, 0, 14)
	buf := make([]byte, 32)
	for len(code) < 14 {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			if len(code) == 4 || len(code) == 9 {
				code = append(code, '-')
			}
			code = append(code, recoveryAlphabet[int(b)%len(recoveryAlphabet)])
			if len(code) == 14 {
				break
			}
		}
	}

	return string(code), nil
}

// NormalizeRecoveryCode uppercases input and restores the dashes, so
// "abcd efgh ijkl" and "ABCD-EFGH-IJKL" verify the same way.
func NormalizeRecoveryCode(in string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(in) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if n := b.Len(); n == 4 || n == 9 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LooksLikeRecoveryCode reports whether in has the shape of a backup code
// after normalization.
func LooksLikeRecoveryCode(in string) bool {
	return len(NormalizeRecoveryCode(in)) == 14
}
