// Package handler contains the HTTP layer: request binding, inline
// validation and translation of domain errors into status codes. All
// business rules live below, in the reservation engine and repositories.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/middleware"
	"github.com/cinelatam/taquilla-api/internal/reservation"
)

// getUserID extracts the authenticated user id stored by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.CtxUserID).(type) {
	case uint64:
		return t, nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRol extracts the authenticated role, empty when absent.
func getRol(c echo.Context) string {
	rol, _ := c.Get(middleware.CtxRol).(string)
	return rol
}

// requestMeta assembles the audit metadata for the current request. The
// actor is the authenticated user id, or "anonimo" on public endpoints.
func requestMeta(c echo.Context) audit.Meta {
	actor := "anonimo"
	if id, err := getUserID(c); err == nil {
		actor = strconv.FormatUint(id, 10)
	}
	ua := c.Request().UserAgent()
	so, dispositivo := audit.ParseUserAgent(ua)
	return audit.Meta{
		Usuario:          actor,
		Host:             c.Request().Host,
		Navegador:        ua,
		SistemaOperativo: so,
		TipoDispositivo:  dispositivo,
		DireccionIP:      c.RealIP(),
	}
}

// paramID parses the numeric :id path parameter.
func paramID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// queryUint parses an optional numeric query parameter, returning 0 when
// absent or malformed.
func queryUint(c echo.Context, name string) uint64 {
	n, _ := strconv.ParseUint(c.QueryParam(name), 10, 64)
	return n
}

// indexToRowLabel converts a zero-based row index to its letter label:
// 0 -> A, 25 -> Z, 26 -> AA.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// normalizeRowLabel strips non-letters and uppercases a row label.
func normalizeRowLabel(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r - 32)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// engineError translates reservation engine errors into the response
// envelope: domain rejections use {message}, unexpected failures {error}.
func engineError(c echo.Context, err error) error {
	var verr *reservation.ValidationError
	var conflict *reservation.SeatConflictError
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": verr.Msg})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"message":  conflict.Error(),
			"asientos": conflict.Seats,
		})
	case errors.Is(err, reservation.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case errors.Is(err, reservation.ErrLastAdmin):
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
