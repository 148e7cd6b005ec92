package entity

import "time"

type Admin struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
	Status    AdminStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoginInfo is what password login needs in one read.
type LoginInfo struct {
	ID           int64
	Email        string
	Status       AdminStatus
	PasswordHash string
	HasMFA       bool
}

// MFA is an enabled TOTP factor. Secret is sealed with mfa.PurposeOTPSeed.
type MFA struct {
	AdminID    int64
	Secret     []byte
	KeyVersion int16
	EnabledAt  time.Time
	LastUsedAt time.Time
}

type BackupCode struct {
	ID      int64
	AdminID int64
	Hash    string
}
