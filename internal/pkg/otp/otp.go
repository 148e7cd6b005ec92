// Package otp wraps pquerna/otp for RFC 6238 time-based codes.
package otp

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type OTP interface {
	// Generate returns a base32 secret and its otpauth:// provisioning URL.
	Generate(accountName string) (secret, url string, err error)
	Validate(code, secret string, at time.Time) bool
	GenerateCode(secret string, at time.Time) (string, error)
}

type TOTP struct {
	issuer string
	opts   totp.ValidateOpts
}

// NewTOTP uses SHA1, which is what authenticator apps expect. Zero period
// and skew become 30 seconds and one step.
func NewTOTP(issuer string, period, skew uint, digits otp.Digits) *TOTP {
	if digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}
	if period == 0 {
		period = 30
	}
	if skew == 0 {
		skew = 1
	}

	return &TOTP{
		issuer: issuer,
		opts: totp.ValidateOpts{
			Period:    period,
			Skew:      skew,
			Digits:    digits,
			Algorithm: otp.AlgorithmSHA1,
		},
	}
}

func (t *TOTP) Generate(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountName,
		Period:      t.opts.Period,
		SecretSize:  20,
		Digits:      t.opts.Digits,
		Algorithm:   t.opts.Algorithm,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func (t *TOTP) Validate(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, t.opts)
	return ok && err == nil
}

func (t *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, t.opts)
}
