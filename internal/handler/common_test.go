package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelatam/taquilla-api/internal/reservation"
)

func TestEngineErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", reservation.ErrNotFound, http.StatusNotFound, `"message"`},
		{"validation", reservation.Validationf("metodoPago invalido"), http.StatusBadRequest, "metodoPago invalido"},
		{"seat conflict", &reservation.SeatConflictError{Seats: []reservation.SeatRef{{Fila: "A", Numero: 1}}}, http.StatusConflict, `"asientos"`},
		{"forbidden", reservation.ErrForbidden, http.StatusForbidden, `"message"`},
		{"last admin", reservation.ErrLastAdmin, http.StatusConflict, `"message"`},
		{"unexpected", assert.AnError, http.StatusInternalServerError, `"error"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			require.NoError(t, engineError(e.NewContext(req, rec), tc.err))
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
		})
	}
}
