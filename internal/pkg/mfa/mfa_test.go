package mfa

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRing() KeyRing {
	return KeyRing{
		Current: 2,
		Keys: map[byte][]byte{
			1: bytes.Repeat([]byte{1}, 32),
			2: bytes.Repeat([]byte{2}, 32),
		},
	}
}

func TestNewAESGCMValidatesRing(t *testing.T) {
	_, err := NewAESGCM(KeyRing{})
	assert.ErrorIs(t, err, ErrNoKeys)

	_, err = NewAESGCM(KeyRing{Current: 3, Keys: map[byte][]byte{1: make([]byte, 32)}})
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = NewAESGCM(KeyRing{Current: 1, Keys: map[byte][]byte{1: make([]byte, 16)}})
	assert.ErrorIs(t, err, ErrKeyLength)
}

func TestAESGCMRoundTrip(t *testing.T) {
	enc, err := NewAESGCM(testRing())
	require.NoError(t, err)

	scope := Scope{AdminID: 10, Purpose: PurposeOTPSeed}
	sealed, err := enc.Encrypt([]byte("JBSWY3DPEHPK3PXP"), scope)
	require.NoError(t, err)

	v, ok := KeyVersion(sealed)
	assert.True(t, ok)
	assert.Equal(t, byte(2), v)

	plain, err := enc.Decrypt(sealed, scope)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", string(plain))

	_, err = enc.Decrypt(sealed, Scope{AdminID: 11, Purpose: PurposeOTPSeed})
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = enc.Decrypt(sealed, Scope{AdminID: 10, Purpose: PurposeOTPPending})
	assert.ErrorIs(t, err, ErrDecrypt)

	sealed[len(sealed)-1] ^= 0xff
	_, err = enc.Decrypt(sealed, scope)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestAESGCMOpensRotatedKey(t *testing.T) {
	old, err := NewAESGCM(KeyRing{Current: 1, Keys: map[byte][]byte{1: bytes.Repeat([]byte{1}, 32)}})
	require.NoError(t, err)

	scope := Scope{AdminID: 1, Purpose: PurposeOTPSeed}
	sealed, err := old.Encrypt([]byte("seed"), scope)
	require.NoError(t, err)

	rotated, err := NewAESGCM(testRing())
	require.NoError(t, err)

	plain, err := rotated.Decrypt(sealed, scope)
	require.NoError(t, err)
	assert.Equal(t, "seed", string(plain))
}

func TestAESGCMRejectsBadInput(t *testing.T) {
	enc, err := NewAESGCM(testRing())
	require.NoError(t, err)

	_, err = enc.Encrypt(nil, Scope{})
	assert.ErrorIs(t, err, ErrEmptyPlaintext)

	_, err = enc.Decrypt([]byte{2, 1, 2}, Scope{})
	assert.ErrorIs(t, err, ErrShortCiphertext)

	_, err = enc.Decrypt(append([]byte{9}, make([]byte, 40)...), Scope{})
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestRecoveryCodes(t *testing.T) {
	codes, err := NewRecoveryCode().Generate()
	require.NoError(t, err)
	require.Len(t, codes, RecoveryCodeCount)

	shape := regexp.MustCompile(`^[2-9A-HJKMNP-Z]{4}-[2-9A-HJKMNP-Z]{4}-[2-9A-HJKMNP-Z]{4}$`)
	seen := map[string]bool{}
	for _, c := range codes {
		assert.Regexp(t, shape, c)
		assert.False(t, seen[c])
		seen[c] = true
	}
}

func TestNormalizeRecoveryCode(t *testing.T) {
	assert.Equal(t, "ABCD-EFGH-JKMN", NormalizeRecoveryCode("abcd efgh jkmn"))
	assert.Equal(t, "ABCD-EFGH-JKMN", NormalizeRecoveryCode("ABCD-EFGH-JKMN"))
	assert.True(t, LooksLikeRecoveryCode("abcdefghjkmn"))
	assert.False(t, LooksLikeRecoveryCode("123456"))
}
