package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/imisi99/Todoapi/internal/repository"
	"github.com/imisi99/Todoapi/internal/service"
	"github.com/imisi99/Todoapi/internal/utils"
)

// AuthHandler bundles dependencies for account endpoints. All
// business rules live in the auth service; handlers bind requests,
// run shape validation and translate error kinds to status codes.
type AuthHandler struct {
	Auth *service.Auth
}

func NewAuthHandler(a *service.Auth) *AuthHandler { return &AuthHandler{Auth: a} }

// ----- DTOs -----

type signupReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

var specialChar = regexp.MustCompile(`[!@#$%^&*(),.?:{}|<>]`)

// validPassword enforces the signup password policy: at least 8
// characters, one uppercase letter and one special character. The
// rejected value itself is never included in any response.
func validPassword(pw string) string {
	if len(pw) < 8 {
		return "password must be at least 8 characters long"
	}
	hasUpper := false
	for _, r := range pw {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return "password must contain at least one uppercase letter"
	}
	if !specialChar.MatchString(pw) {
		return "password must contain at least one special character"
	}
	return ""
}

func validUsername(name string) string {
	if n := len(name); n < 3 || n > 15 {
		return "username must be between 3 and 15 characters"
	}
	return ""
}

// Signup handles POST /user/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
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
	if msg := validPassword(req.Password); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Auth.Signup(ctx, req.Firstname, req.Lastname, req.Username, req.Email, req.Password); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusCreated, "User has been created successfully")
}

// Login handles POST /user/login and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusAccepted, tokenResp{AccessToken: token, TokenType: "bearer"})
}

// getUserID pulls the authenticated user's id out of the context
// where JWTAuth stored it.
func getUserID(c echo.Context) (string, bool) {
	id, ok := c.Get("user_id").(string)
	return id, ok && id != ""
}

// authError maps the service error taxonomy onto HTTP status codes.
// Taken credentials return 226; existing clients depend on that
// status, so it stays.
func authError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCredentialsTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusIMUsed, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, utils.ErrTokenExpired),
		errors.Is(err, utils.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPasswordMismatch):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, repository.ErrOtpNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrOtpExpired),
		errors.Is(err, repository.ErrOtpUsed):
		return c.JSON(http.StatusGone, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "service temporarily unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "please try again later"})
}
