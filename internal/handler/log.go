package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/repository"
)

// LogHandler exposes the read-only audit trail to admins.
type LogHandler struct {
	Logs *repository.LogRepo
}

// List handles GET /logs (admin). Optional ?usuario= filters by actor and
// ?limit= caps the result size.
func (h *LogHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.Logs.List(c.Request().Context(), c.QueryParam("usuario"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}
