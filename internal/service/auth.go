package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/imisi99/Todoapi/internal/model"
	"github.com/imisi99/Todoapi/internal/repository"
	"github.com/imisi99/Todoapi/internal/utils"
)

// UserStore is the slice of user persistence the auth service needs.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	UsernameEmailTaken(ctx context.Context, username, email, excludeID string) (bool, bool, error)
	UpdateDetails(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// OtpStore is the OTP persistence contract. *repository.OtpRepo
// satisfies it. Consume and ConsumeForUser must mark the code used
// atomically with the lookup.
type OtpStore interface {
	Create(ctx context.Context, o *model.Otp) error
	Consume(ctx context.Context, code int, purpose string) (string, error)
	ConsumeForUser(ctx context.Context, userID string, code int, purpose string) (string, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// TodoStore is the narrow todo contract the auth service needs for
// account deletion. *repository.TodoRepo satisfies it.
type TodoStore interface {
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// Notifier delivers user-facing messages (email). Delivery is
// fire-and-forget: the auth service logs failures and never fails
// the triggering operation because of one.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Auth composes the stores, the password hasher, the token codec and
// the OTP generator into the account lifecycle operations. It holds
// no mutable state; every operation is an independent unit of work
// against the shared store, safe for unrestricted parallel use.
type Auth struct {
	Users     UserStore
	Otps      OtpStore
	Todos     TodoStore
	Notify    Notifier
	Secret    string        // JWT signing secret, injected at startup
	Cost      int           // bcrypt cost
	TokenTTL  time.Duration // session token lifetime (1h)
	OtpTTL    time.Duration // OTP validity window (20m)
	OtpSesTTL time.Duration // OTP-session token lifetime (15m)
}

func NewAuth(users UserStore, otps OtpStore, todos TodoStore, notify Notifier, secret string, cost int) *Auth {
	return &Auth{
		Users:     users,
		Otps:      otps,
		Todos:     todos,
		Notify:    notify,
		Secret:    secret,
		Cost:      cost,
		TokenTTL:  time.Hour,
		OtpTTL:    20 * time.Minute,
		OtpSesTTL: 15 * time.Minute,
	}
}

// Signup creates a new account. Both uniqueness constraints are
// checked before any mutation; a username and email that are both
// taken come back as the combined ErrCredentialsTaken. The unique
// indexes remain the final arbiter: if a concurrent signup wins the
// race between check and insert, the 1062 error from the store is
// mapped onto the same kinds.
func (a *Auth) Signup(ctx context.Context, firstname, lastname, username, email, password string) (model.User, error) {
	usernameTaken, emailTaken, err := a.Users.UsernameEmailTaken(ctx, username, email, "")
	if err != nil {
		return model.User{}, storeErr(err)
	}
	switch {
	case usernameTaken && emailTaken:
		return model.User{}, ErrCredentialsTaken
	case usernameTaken:
		return model.User{}, ErrUsernameTaken
	case emailTaken:
		return model.User{}, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password, a.Cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           uuid.NewString(),
		Firstname:    firstname,
		Lastname:     lastname,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.DefaultRole,
		Timezone:     model.DefaultTimezone,
	}
	if err := a.Users.Create(ctx, &u); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return model.User{}, ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, storeErr(err)
	}
	a.send(ctx, u.Email, "Welcome to Todoapi",
		fmt.Sprintf("Hi %s, your account has been created successfully.", u.Firstname))
	return u, nil
}

// Login verifies the credentials and issues a session token with a
// one hour TTL. An unknown username and a wrong password are the
// same error on purpose.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", storeErr(err)
	}
	ok, err := utils.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	return utils.NewSessionToken(a.Secret, u.ID, u.Role, a.TokenTTL)
}

// Authenticate parses a session token and returns its claims. A
// structurally valid token that is missing the role or user id is
// still rejected.
func (a *Auth) Authenticate(token string) (utils.SessionClaims, error) {
	claims, err := utils.ParseSessionToken(a.Secret, token)
	if err != nil {
		return utils.SessionClaims{}, err
	}
	if claims.Role == "" || claims.UserID == "" {
		return utils.SessionClaims{}, ErrUnauthorized
	}
	return claims, nil
}

// GetUser loads a user's profile.
func (a *Auth) GetUser(ctx context.Context, userID string) (model.User, error) {
	u, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, storeErr(err)
	}
	return u, nil
}

// UpdateDetails rewrites the caller's profile. Uniqueness is
// re-checked excluding the caller's own row so keeping the current
// username or email is not a collision.
func (a *Auth) UpdateDetails(ctx context.Context, userID, firstname, lastname, username, email string) error {
	usernameTaken, emailTaken, err := a.Users.UsernameEmailTaken(ctx, username, email, userID)
	if err != nil {
		return storeErr(err)
	}
	switch {
	case usernameTaken && emailTaken:
		return ErrCredentialsTaken
	case usernameTaken:
		return ErrUsernameTaken
	case emailTaken:
		return ErrEmailTaken
	}
	u, err := a.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	u.Firstname = firstname
	u.Lastname = lastname
	u.Username = username
	u.Email = email
	if err := a.Users.UpdateDetails(ctx, &u); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return ErrUserNotFound
		}
		return storeErr(err)
	}
	return nil
}

// ChangePassword replaces the password of a logged-in user who still
// knows the current one.
func (a *Auth) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	u, err := a.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := utils.VerifyPassword(u.PasswordHash, current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	hash, err := utils.HashPassword(newPassword, a.Cost)
	if err != nil {
		return err
	}
	if err := a.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return storeErr(err)
	}
	a.send(ctx, u.Email, "Your password was changed",
		"Your Todoapi password has just been changed. If this wasn't you, reset it immediately.")
	return nil
}

// RequestPasswordReset issues a password-reset OTP for the account
// behind email and mails the code. An unknown email is reported as
// ErrUserNotFound; the frontend surfaces it, so the enumeration
// trade-off is deliberate.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return storeErr(err)
	}
	code, err := a.issueOtp(ctx, u.ID, model.OtpPurposeReset)
	if err != nil {
		return err
	}
	a.send(ctx, u.Email, "Your password reset code",
		fmt.Sprintf("Use code %d to reset your password. It expires in %d minutes.", code, int(a.OtpTTL.Minutes())))
	return nil
}

// VerifyOtp consumes a pending OTP and, on success, issues a short
// OTP-session token that authorizes the follow-up call. The store
// guarantees single use: of two concurrent verifications exactly one
// succeeds and the other sees ErrOtpUsed.
func (a *Auth) VerifyOtp(ctx context.Context, code int, purpose string) (string, error) {
	userID, err := a.Otps.Consume(ctx, code, purpose)
	if err != nil {
		return "", otpErr(err)
	}
	return utils.NewOtpSessionToken(a.Secret, userID, a.OtpSesTTL)
}

// ResetPassword sets a new password for the user proven by an
// OTP-session token. Invalid or expired tokens are ErrUnauthorized.
func (a *Auth) ResetPassword(ctx context.Context, otpSessionToken, newPassword, confirm string) error {
	claims, err := utils.ParseOtpSessionToken(a.Secret, otpSessionToken)
	if err != nil || claims.UserID == "" {
		return ErrUnauthorized
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	u, err := a.GetUser(ctx, claims.UserID)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword, a.Cost)
	if err != nil {
		return err
	}
	if err := a.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return storeErr(err)
	}
	a.send(ctx, u.Email, "Your password was reset",
		"Your Todoapi password has been reset. If this wasn't you, contact support.")
	return nil
}

// RequestAccountDeletion issues an account-deletion OTP and mails it
// to the account owner.
func (a *Auth) RequestAccountDeletion(ctx context.Context, userID string) error {
	u, err := a.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	code, err := a.issueOtp(ctx, u.ID, model.OtpPurposeDelete)
	if err != nil {
		return err
	}
	a.send(ctx, u.Email, "Confirm account deletion",
		fmt.Sprintf("Use code %d to confirm deleting your account. It expires in %d minutes.", code, int(a.OtpTTL.Minutes())))
	return nil
}

// ConfirmAccountDeletion verifies a deletion OTP owned by userID and
// removes the account. The asserted username must match the stored
// record, which blocks replaying a deletion confirmation against a
// different account. Todos go first, then OTP rows, then the user,
// so an interruption cannot orphan rows behind a missing user.
func (a *Auth) ConfirmAccountDeletion(ctx context.Context, userID string, code int, username string) error {
	u, err := a.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if u.Username != username {
		return ErrUnauthorized
	}
	if _, err := a.Otps.ConsumeForUser(ctx, userID, code, model.OtpPurposeDelete); err != nil {
		return otpErr(err)
	}
	if _, err := a.Todos.DeleteByUser(ctx, userID); err != nil {
		return storeErr(err)
	}
	if err := a.Otps.DeleteByUser(ctx, userID); err != nil {
		return storeErr(err)
	}
	if err := a.Users.Delete(ctx, userID); err != nil {
		return storeErr(err)
	}
	a.send(ctx, u.Email, "Your account was deleted",
		"Your Todoapi account and all of its tasks have been deleted.")
	return nil
}

// issueOtp generates a fresh code and persists it with the
// configured window.
func (a *Auth) issueOtp(ctx context.Context, userID, purpose string) (int, error) {
	code, err := utils.GenerateOTP()
	if err != nil {
		return 0, err
	}
	o := model.Otp{
		Code:      code,
		UserID:    userID,
		Purpose:   purpose,
		ExpiresAt: time.Now().UTC().Add(a.OtpTTL),
	}
	if err := a.Otps.Create(ctx, &o); err != nil {
		return 0, storeErr(err)
	}
	return code, nil
}

// send delivers a notification and deliberately swallows failures: a
// broken mail path must never roll back the operation that triggered
// it.
func (a *Auth) send(ctx context.Context, to, subject, body string) {
	if a.Notify == nil {
		return
	}
	if err := a.Notify.Send(ctx, to, subject, body); err != nil {
		log.Printf("auth: notify %q failed: %v", subject, err)
	}
}

// otpErr passes the repository's distinct OTP kinds through
// untouched and wraps anything else as a store fault.
func otpErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrOtpNotFound),
		errors.Is(err, repository.ErrOtpExpired),
		errors.Is(err, repository.ErrOtpUsed):
		return err
	}
	return storeErr(err)
}

// storeErr brands unexpected persistence failures (driver faults,
// timeouts, cancelled contexts) as ErrStoreUnavailable while keeping
// the cause in the message.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
