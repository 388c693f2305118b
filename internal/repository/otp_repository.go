package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/imisi99/Todoapi/internal/model"
)

// OtpRepo provides data access to the otps table. Verification is
// the delicate part: marking a code used must be atomic with the
// lookup so two concurrent verifications of the same code cannot
// both succeed. That is done with a single conditional UPDATE
// ("set used where still unused and unexpired") whose affected-row
// count decides the winner; there is never a read-then-write window.
type OtpRepo struct{ DB *sql.DB }

func NewOtpRepo(db *sql.DB) *OtpRepo { return &OtpRepo{DB: db} }

// Create persists a freshly issued OTP and fills in the generated id.
func (r *OtpRepo) Create(ctx context.Context, o *model.Otp) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO otps (code, user_id, purpose, expires_at, used) VALUES (?,?,?,?,0)",
		o.Code, o.UserID, o.Purpose, o.ExpiresAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// Consume looks up the newest OTP matching code and purpose, marks
// it used and returns the owning user id. Failures are distinct:
// ErrOtpNotFound when no such code/purpose pair exists, ErrOtpExpired
// when it exists but the window has lapsed, ErrOtpUsed when it was
// already consumed (including losing a concurrent race).
func (r *OtpRepo) Consume(ctx context.Context, code int, purpose string) (string, error) {
	return r.consume(ctx,
		"SELECT id, user_id, expires_at, used FROM otps WHERE code=? AND purpose=? ORDER BY id DESC LIMIT 1",
		code, purpose)
}

// ConsumeForUser is Consume scoped to one owner. A code issued to a
// different user is ErrOtpNotFound: deletion codes must never cross
// accounts.
func (r *OtpRepo) ConsumeForUser(ctx context.Context, userID string, code int, purpose string) (string, error) {
	return r.consume(ctx,
		"SELECT id, user_id, expires_at, used FROM otps WHERE user_id=? AND code=? AND purpose=? ORDER BY id DESC LIMIT 1",
		userID, code, purpose)
}

func (r *OtpRepo) consume(ctx context.Context, query string, args ...interface{}) (string, error) {
	var (
		id        uint64
		userID    string
		expiresAt time.Time
		used      bool
	)
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&id, &userID, &expiresAt, &used)
	if err == sql.ErrNoRows {
		return "", ErrOtpNotFound
	}
	if err != nil {
		return "", err
	}
	if used {
		return "", ErrOtpUsed
	}
	// expired iff now is past the recorded expiry
	if time.Now().UTC().After(expiresAt) {
		return "", ErrOtpExpired
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE otps SET used=1 WHERE id=? AND used=0 AND expires_at > UTC_TIMESTAMP()", id)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		// a concurrent verification got here first
		return "", ErrOtpUsed
	}
	return userID, nil
}

// DeleteByUser removes every OTP row owned by the user.
func (r *OtpRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM otps WHERE user_id=?", userID)
	return err
}
