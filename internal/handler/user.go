package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imisi99/Todoapi/internal/model"
)

// ----- DTOs -----

type userDetailsResp struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
type updateUserReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
type newPasswordReq struct {
	Password        string `json:"password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
type forgotPasswordReq struct {
	Email string `json:"email"`
}
type verifyOtpReq struct {
	Otp     string `json:"otp"`
	Purpose string `json:"purpose"`
}
type resetPasswordReq struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
type deleteUserReq struct {
	Otp      string `json:"otp"`
	Username string `json:"username"`
}

// GetUserDetails handles GET /user/get-user-details.
func (h *AuthHandler) GetUserDetails(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Auth.GetUser(ctx, uid)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, userDetailsResp{
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Username:  u.Username,
		Email:     u.Email,
	})
}

// UpdateUserDetails handles PUT /user/update-user-details.
func (h *AuthHandler) UpdateUserDetails(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)
	req.Username = strings.ReplaceAll(strings.TrimSpace(req.Username), " ", "")
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname, lastname and email are required"})
	}
	if msg := validUsername(req.Username); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.UpdateDetails(ctx, uid, req.Firstname, req.Lastname, req.Username, req.Email); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, "User details have been updated successfully")
}

// ChangeUserPassword handles PUT /user/change-user-password for a
// logged-in user who knows the current password.
func (h *AuthHandler) ChangeUserPassword(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req newPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validPassword(req.NewPassword); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.ChangePassword(ctx, uid, req.Password, req.NewPassword, req.ConfirmPassword); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, "Password has been changed successfully")
}

// ForgotPassword handles PUT /user/forgot-password: it issues a
// password-reset OTP and mails it to the account's address.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.RequestPasswordReset(ctx, req.Email); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, "A reset code has been sent to your email")
}

// VerifyOtp handles POST /user/verify-otp. On success the response
// carries a short-lived token authorizing the follow-up call.
func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	var req verifyOtpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code, err := strconv.Atoi(strings.TrimSpace(req.Otp))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "otp must be a 6-digit code"})
	}
	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		purpose = model.OtpPurposeReset
	}
	if purpose != model.OtpPurposeReset && purpose != model.OtpPurposeDelete {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown otp purpose"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, err := h.Auth.VerifyOtp(ctx, code, purpose)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// ResetPassword handles PUT /user/reset-password. It requires the
// OTP-session token from VerifyOtp in the Authorization header.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	token := strings.TrimPrefix(header, "Bearer ")

	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := validPassword(req.NewPassword); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.ResetPassword(ctx, token, req.NewPassword, req.ConfirmPassword); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, "Password has been updated successfully")
}

// RequestDelete handles POST /user/request-delete: it issues an
// account-deletion OTP for the logged-in user.
func (h *AuthHandler) RequestDelete(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.RequestAccountDeletion(ctx, uid); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, "A deletion code has been sent to your email")
}

// DeleteUser handles DELETE /user/delete-user. The caller must
// supply the deletion OTP and their own username; the account, its
// todos and its OTP records are removed together.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req deleteUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code, err := strconv.Atoi(strings.TrimSpace(req.Otp))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "otp must be a 6-digit code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.ConfirmAccountDeletion(ctx, uid, code, strings.TrimSpace(req.Username)); err != nil {
		return authError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
