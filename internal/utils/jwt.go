package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Token parse failures come in two kinds so that callers can tell
// "log in again" from "corrupted or forged token".
var (
	// ErrTokenExpired means the signature checked out but the exp
	// claim has lapsed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers everything else: malformed token, bad
	// signature, wrong signing algorithm, missing claims.
	ErrTokenInvalid = errors.New("token invalid")
)

// SessionClaims is the claims set carried by an ordinary login
// session token. The subject claim holds the role and the id claim
// holds the user id, mirroring the layout the frontend already
// depends on.
type SessionClaims struct {
	UserID string    // "id" claim
	Role   string    // "sub" claim
	Exp    time.Time // "exp" claim
}

// OtpSessionClaims is the short-lived claims set issued after a
// successful OTP verification. It authorizes exactly one follow-up
// call (password reset) and carries nothing but the verified user id.
type OtpSessionClaims struct {
	UserID string    // "id" claim
	Exp    time.Time // "exp" claim
}

// NewSessionToken builds and signs an HS256 JWT for a logged-in user.
// The claims layout is {sub: role, id: userID, exp, iat}.
func NewSessionToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": role,
		"id":  userID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// NewOtpSessionToken builds and signs an HS256 JWT that proves a
// recent OTP verification. It carries only {id: userID, exp, iat}.
func NewOtpSessionToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies the signature and expiry of a session
// token and returns its claims. Absent role/id claims come back as
// empty strings; rejecting those is the caller's decision.
func ParseSessionToken(secret, token string) (SessionClaims, error) {
	claims, err := parse(secret, token)
	if err != nil {
		return SessionClaims{}, err
	}
	out := SessionClaims{}
	if v, ok := claims["sub"].(string); ok {
		out.Role = v
	}
	if v, ok := claims["id"].(string); ok {
		out.UserID = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Exp = exp.Time
	}
	return out, nil
}

// ParseOtpSessionToken verifies an OTP-session token and returns its
// claims.
func ParseOtpSessionToken(secret, token string) (OtpSessionClaims, error) {
	claims, err := parse(secret, token)
	if err != nil {
		return OtpSessionClaims{}, err
	}
	out := OtpSessionClaims{}
	if v, ok := claims["id"].(string); ok {
		out.UserID = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Exp = exp.Time
	}
	return out, nil
}

// parse runs signature and expiry validation with the signing
// algorithm pinned to HS256. Pinning happens twice: jwt.Parse only
// accepts HS256 via WithValidMethods, and the keyfunc re-checks the
// method before handing out the secret, so a token signed with a
// different algorithm can never be accepted ("alg confusion").
func parse(secret, token string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
