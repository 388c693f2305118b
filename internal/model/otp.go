package model

import "time"

// OTP purposes. A stored code is only valid for the purpose it was
// issued under; verification always matches on code and purpose
// together.
const (
	OtpPurposeReset  = "password-reset"
	OtpPurposeDelete = "account-deletion"
)

// Otp mirrors a row in the `otps` table. A code moves through a
// one-way lifecycle: issued, then either consumed (Used=true) or
// expired. A used or expired code is permanently inactive and is
// never resurrected. Several outstanding codes per user are
// allowed as long as each matches on purpose when verified.
//
// Fields:
//  ID        – auto-increment primary key.
//  Code      – 6-digit numeric code in [100000, 999999].
//  UserID    – owner (users.id foreign key).
//  Purpose   – one of the OtpPurpose* constants.
//  ExpiresAt – issued-at plus the configured window (20 minutes).
//  Used      – set once, atomically, on successful verification.
//  CreatedAt – timestamp of creation.
type Otp struct {
	ID        uint64
	Code      int
	UserID    string
	Purpose   string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
