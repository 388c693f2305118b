package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/imisi99/Todoapi/internal/service" // auth service performs token validation
	"github.com/imisi99/Todoapi/internal/utils"   // token error kinds
)

// JWTAuth returns an Echo middleware that validates a Bearer session
// token and injects the token's user id and role claims into the
// request context. Validation is delegated to the auth service so
// the same rules apply everywhere: the signing algorithm is pinned,
// expiry is enforced, and a structurally valid token missing its
// role or user id is rejected. This middleware should wrap protected
// routes so that handlers can read `c.Get("user_id")` and
// `c.Get("role")`.
func JWTAuth(auth *service.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the Authorization header. A valid header starts
			// with "Bearer " followed by the JWT; anything else is a
			// 401 straight away.
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := auth.Authenticate(raw)
			if err != nil {
				// An expired-but-authentic token gets its own message
				// so clients know to log in again rather than treat
				// the token as corrupted.
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired, login to continue"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Store the claims in the context for handlers and
			// downstream middleware.
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
