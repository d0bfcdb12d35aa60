package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/repository"
)

// AsientoHandler exposes read-only seat queries. Seat state is only ever
// mutated through the reservation engine or a room layout change.
type AsientoHandler struct {
	Asientos *repository.AsientoRepo
}

// Search handles GET /asientos with optional id, sala, fila and estado
// filters.
func (h *AsientoHandler) Search(c echo.Context) error {
	seats, err := h.Asientos.Search(c.Request().Context(),
		queryUint(c, "id"), queryUint(c, "sala"),
		normalizeRowLabel(c.QueryParam("fila")), c.QueryParam("estado"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, seats)
}

// Get handles GET /asientos/:id.
func (h *AsientoHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	seat, err := h.Asientos.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAsientoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "asiento no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, seat)
}
