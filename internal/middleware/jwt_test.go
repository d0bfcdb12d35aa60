package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelatam/taquilla-api/internal/auth"
	"github.com/cinelatam/taquilla-api/internal/utils"
)

const testSecret = "test-secret"

func callProtected(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "cliente", 5)
	require.NoError(t, err)

	rec, c := callProtected(t, JWTAuth(testSecret, nil), "Bearer "+tok.Token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), c.Get(CtxUserID))
	assert.Equal(t, "cliente", c.Get(CtxRol))
	assert.Equal(t, tok.Token, c.Get(CtxToken))
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	mw := JWTAuth(testSecret, nil)

	rec, _ := callProtected(t, mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = callProtected(t, mw, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := utils.NewAccessToken("other-secret", 1, "cliente", 5)
	require.NoError(t, err)
	rec, _ = callProtected(t, mw, "Bearer "+other.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsRevokedSession(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "admin", 5)
	require.NoError(t, err)

	revoked := auth.NewMemoryStore()
	mw := JWTAuth(testSecret, revoked)

	rec, _ := callProtected(t, mw, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, revoked.Revoke(context.Background(), tok.Token, time.Minute))

	rec, _ = callProtected(t, mw, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session revoked")
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := RequireRole("cliente", "admin")
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func(rol string, set bool) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if set {
			c.Set(CtxRol, rol)
		}
		require.NoError(t, handler(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run("cliente", true))
	assert.Equal(t, http.StatusOK, run("admin", true))
	assert.Equal(t, http.StatusForbidden, run("otro", true))
	assert.Equal(t, http.StatusForbidden, run("", false))
}
