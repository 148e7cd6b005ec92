package otp

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTP(t *testing.T) {
	o := NewTOTP("Gomotor", 30, 1, otp.DigitsSix)

	secret, url, err := o.Generate("admin@gomotor.test")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "otpauth://totp/"))
	assert.Contains(t, url, "issuer=Gomotor")

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	code, err := o.GenerateCode(secret, at)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	assert.True(t, o.Validate(code, secret, at))
	assert.True(t, o.Validate(code, secret, at.Add(30*time.Second)))
	assert.False(t, o.Validate(code, secret, at.Add(2*time.Minute)))
	assert.False(t, o.Validate("000000x", secret, at))
}

func TestNewTOTPDefaults(t *testing.T) {
	o := NewTOTP("x", 0, 0, otp.Digits(7))
	assert.Equal(t, uint(30), o.opts.Period)
	assert.Equal(t, uint(1), o.opts.Skew)
	assert.Equal(t, otp.DigitsSix, o.opts.Digits)
}
