package repository

import (
	"context"
	"database/sql"
	"time"
)

// ResetRepo persists password-reset tokens (single 'token_hash' column).
// Only a SHA-256 hash of the issued token is stored, and a token can be
// consumed exactly once, so a leaked database dump or a replayed link
// cannot reset a password a second time.
type ResetRepo struct{ DB *sql.DB }

func NewResetRepo(db *sql.DB) *ResetRepo { return &ResetRepo{DB: db} }

// Store inserts a reset token hash row for the given email.
func (r *ResetRepo) Store(ctx context.Context, email, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO password_resets (email, token_hash, expires_at) VALUES (?,?,?)",
		email, tokenHash, exp)
	return err
}

// Consume marks an unused, unexpired token as used.  ErrNotFound is
// returned when the token was never issued, already consumed or expired.
func (r *ResetRepo) Consume(ctx context.Context, tokenHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE password_resets SET used_at=NOW() WHERE token_hash=? AND used_at IS NULL AND expires_at > NOW()",
		tokenHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
