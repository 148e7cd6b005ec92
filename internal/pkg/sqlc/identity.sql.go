package sqlc

import (
	"context"
)

const adminColumns = `id, email, full_name, avatar_url, status, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (Admin, error) {
	var i Admin
	err := row.Scan(&i.ID, &i.Email, &i.FullName, &i.AvatarUrl, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getAdminByID = `select ` + adminColumns + ` from admins where id = $1`

func (q *Queries) GetAdminByID(ctx context.Context, id int64) (Admin, error) {
	return scanAdmin(q.db.QueryRow(ctx, getAdminByID, id))
}

const getAdminByEmail = `select ` + adminColumns + ` from admins where lower(email) = lower($1::text)`

func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (Admin, error) {
	return scanAdmin(q.db.QueryRow(ctx, getAdminByEmail, email))
}

const getAdminLoginInfo = `
select a.id, a.email, a.status, c.password_hash,
       exists (select 1 from admin_mfa m where m.admin_id = a.id) as has_mfa
from admins a
join admin_credentials c on c.admin_id = a.id
where lower(a.email) = lower($1::text)`

type GetAdminLoginInfoRow struct {
	ID           int64
	Email        string
	Status       string
	PasswordHash string
	HasMfa       bool
}

func (q *Queries) GetAdminLoginInfo(ctx context.Context, email string) (GetAdminLoginInfoRow, error) {
	var i GetAdminLoginInfoRow
	err := q.db.QueryRow(ctx, getAdminLoginInfo, email).Scan(&i.ID, &i.Email, &i.Status, &i.PasswordHash, &i.HasMfa)
	return i, err
}

const getAdminPasswordHash = `select password_hash from admin_credentials where admin_id = $1`

func (q *Queries) GetAdminPasswordHash(ctx context.Context, adminID int64) (string, error) {
	var hash string
	err := q.db.QueryRow(ctx, getAdminPasswordHash, adminID).Scan(&hash)
	return hash, err
}

const createAdmin = `insert into admins (id, email, full_name, status) values ($1, lower($2::text), $3, $4)`

type CreateAdminParams struct {
	ID       int64
	Email    string
	FullName string
	Status   string
}

func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) error {
	_, err := q.db.Exec(ctx, createAdmin, arg.ID, arg.Email, arg.FullName, arg.Status)
	return err
}

const createAdminCredential = `insert into admin_credentials (admin_id, password_hash) values ($1, $2)`

type CreateAdminCredentialParams struct {
	AdminID      int64
	PasswordHash string
}

func (q *Queries) CreateAdminCredential(ctx context.Context, arg CreateAdminCredentialParams) error {
	_, err := q.db.Exec(ctx, createAdminCredential, arg.AdminID, arg.PasswordHash)
	return err
}

const updateAdminProfile = `update admins set full_name = $2, email = lower($3::text), updated_at = now() where id = $1`

type UpdateAdminProfileParams struct {
	ID       int64
	FullName string
	Email    string
}

func (q *Queries) UpdateAdminProfile(ctx context.Context, arg UpdateAdminProfileParams) (int64, error) {
	return q.execRows(ctx, updateAdminProfile, arg.ID, arg.FullName, arg.Email)
}

const updateAdminAvatar = `update admins set avatar_url = $2, updated_at = now() where id = $1`

type UpdateAdminAvatarParams struct {
	ID        int64
	AvatarUrl string
}

func (q *Queries) UpdateAdminAvatar(ctx context.Context, arg UpdateAdminAvatarParams) (int64, error) {
	return q.execRows(ctx, updateAdminAvatar, arg.ID, arg.AvatarUrl)
}

const updateAdminPassword = `update admin_credentials set password_hash = $2, updated_at = now() where admin_id = $1`

type UpdateAdminPasswordParams struct {
	AdminID      int64
	PasswordHash string
}

func (q *Queries) UpdateAdminPassword(ctx context.Context, arg UpdateAdminPasswordParams) (int64, error) {
	return q.execRows(ctx, updateAdminPassword, arg.AdminID, arg.PasswordHash)
}

const getAdminMFA = `select admin_id, secret, key_version, enabled_at, last_used_at from admin_mfa where admin_id = $1`

func (q *Queries) GetAdminMFA(ctx context.Context, adminID int64) (AdminMfa, error) {
	var i AdminMfa
	err := q.db.QueryRow(ctx, getAdminMFA, adminID).Scan(&i.AdminID, &i.Secret, &i.KeyVersion, &i.EnabledAt, &i.LastUsedAt)
	return i, err
}

const createAdminMFA = `insert into admin_mfa (admin_id, secret, key_version, enabled_at) values ($1, $2, $3, now())`

type CreateAdminMFAParams struct {
	AdminID    int64
	Secret     []byte
	KeyVersion int16
}

func (q *Queries) CreateAdminMFA(ctx context.Context, arg CreateAdminMFAParams) error {
	_, err := q.db.Exec(ctx, createAdminMFA, arg.AdminID, arg.Secret, arg.KeyVersion)
	return err
}

const touchAdminMFA = `update admin_mfa set last_used_at = now() where admin_id = $1`

func (q *Queries) TouchAdminMFA(ctx context.Context, adminID int64) error {
	_, err := q.db.Exec(ctx, touchAdminMFA, adminID)
	return err
}

const deleteAdminMFA = `delete from admin_mfa where admin_id = $1`

func (q *Queries) DeleteAdminMFA(ctx context.Context, adminID int64) (int64, error) {
	return q.execRows(ctx, deleteAdminMFA, adminID)
}

const listUnusedBackupCodes = `
select id, admin_id, code_hash, used_at, created_at
from admin_backup_codes
where admin_id = $1 and used_at is null
order by id`

func (q *Queries) ListUnusedBackupCodes(ctx context.Context, adminID int64) ([]AdminBackupCode, error) {
	rows, err := q.db.Query(ctx, listUnusedBackupCodes, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AdminBackupCode
	for rows.Next() {
		var i AdminBackupCode
		if err := rows.Scan(&i.ID, &i.AdminID, &i.CodeHash, &i.UsedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

const createAdminBackupCode = `insert into admin_backup_codes (id, admin_id, code_hash) values ($1, $2, $3)`

type CreateAdminBackupCodeParams struct {
	ID       int64
	AdminID  int64
	CodeHash string
}

func (q *Queries) CreateAdminBackupCode(ctx context.Context, arg CreateAdminBackupCodeParams) error {
	_, err := q.db.Exec(ctx, createAdminBackupCode, arg.ID, arg.AdminID, arg.CodeHash)
	return err
}

const markBackupCodeUsed = `update admin_backup_codes set used_at = now() where id = $1 and admin_id = $2 and used_at is null`

type MarkBackupCodeUsedParams struct {
	ID      int64
	AdminID int64
}

func (q *Queries) MarkBackupCodeUsed(ctx context.Context, arg MarkBackupCodeUsedParams) (int64, error) {
	return q.execRows(ctx, markBackupCodeUsed, arg.ID, arg.AdminID)
}

const deleteAdminBackupCodes = `delete from admin_backup_codes where admin_id = $1`

func (q *Queries) DeleteAdminBackupCodes(ctx context.Context, adminID int64) error {
	_, err := q.db.Exec(ctx, deleteAdminBackupCodes, adminID)
	return err
}
