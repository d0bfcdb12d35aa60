package middleware // reusable HTTP middleware shared by all route groups

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/auth"
	"github.com/cinelatam/taquilla-api/internal/utils"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxRol      = "rol"
	CtxToken    = "token"
	CtxTokenExp = "token_exp"
)

// JWTAuth validates a Bearer access token, rejects revoked sessions and
// injects the verified user id and role into the echo context. revoked
// may be nil when no revocation store is wired.
func JWTAuth(secret string, revoked auth.RevocationStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), raw)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session check failed"})
				}
				if isRevoked {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session revoked"})
				}
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRol, claims.Rol)
			c.Set(CtxToken, raw)
			c.Set(CtxTokenExp, claims.Exp)
			return next(c)
		}
	}
}
