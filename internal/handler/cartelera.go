package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

// CarteleraHandler serves the weekly program: which movie plays in which
// room at which showtime on each day.
type CarteleraHandler struct {
	Cartelera *repository.CarteleraRepo
	Peliculas *repository.PeliculaRepo
	Horarios  *repository.HorarioRepo
	Salas     *repository.SalaRepo
	Audit     audit.Recorder
}

type carteleraBody struct {
	PeliculaID uint64 `json:"idPelicula"`
	HorarioID  uint64 `json:"idHorario"`
	SalaID     uint64 `json:"idSala"`
	DiaSemana  string `json:"diaSemana"`
}

// checkRefs verifies the three referenced entities exist; it returns a
// non-zero status with a message otherwise.
func (h *CarteleraHandler) checkRefs(c echo.Context, b carteleraBody) (int, string) {
	ctx := c.Request().Context()
	if _, err := h.Peliculas.GetByID(ctx, b.PeliculaID); err != nil {
		if errors.Is(err, repository.ErrPeliculaNotFound) {
			return http.StatusNotFound, "pelicula no encontrada"
		}
		return http.StatusInternalServerError, "db error"
	}
	if _, err := h.Horarios.GetByID(ctx, b.HorarioID); err != nil {
		if errors.Is(err, repository.ErrHorarioNotFound) {
			return http.StatusNotFound, "horario no encontrado"
		}
		return http.StatusInternalServerError, "db error"
	}
	if _, err := h.Salas.GetByID(ctx, b.SalaID); err != nil {
		if errors.Is(err, repository.ErrSalaNotFound) {
			return http.StatusNotFound, "sala no encontrada"
		}
		return http.StatusInternalServerError, "db error"
	}
	return 0, ""
}

// Create handles POST /cartelera (admin).
func (h *CarteleraHandler) Create(c echo.Context) error {
	var body carteleraBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if !repository.ValidDia(body.DiaSemana) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "diaSemana invalido"})
	}
	if status, msg := h.checkRefs(c, body); status != 0 {
		return c.JSON(status, echo.Map{"message": msg})
	}
	listing := &model.Cartelera{
		PeliculaID: body.PeliculaID,
		HorarioID:  body.HorarioID,
		SalaID:     body.SalaID,
		DiaSemana:  strings.ToLower(strings.TrimSpace(body.DiaSemana)),
	}
	ctx := c.Request().Context()
	if err := h.Cartelera.Create(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "la funcion ya esta en cartelera"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create listing"})
	}
	h.Audit.Record(ctx, requestMeta(c), "cartelera creada")
	return c.JSON(http.StatusCreated, listing)
}

// List handles GET /cartelera. Without a dia filter it returns the whole
// week; ?dia=hoy resolves to the current day.
func (h *CarteleraHandler) List(c echo.Context) error {
	dia := strings.ToLower(strings.TrimSpace(c.QueryParam("dia")))
	if dia == "hoy" {
		dia = repository.Hoy()
	}
	if dia != "" && !repository.ValidDia(dia) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "diaSemana invalido"})
	}
	listings, err := h.Cartelera.List(c.Request().Context(), dia)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, listings)
}

// Update handles PUT /cartelera/:id (admin).
func (h *CarteleraHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body carteleraBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if !repository.ValidDia(body.DiaSemana) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "diaSemana invalido"})
	}
	if status, msg := h.checkRefs(c, body); status != 0 {
		return c.JSON(status, echo.Map{"message": msg})
	}
	listing := &model.Cartelera{
		ID:         id,
		PeliculaID: body.PeliculaID,
		HorarioID:  body.HorarioID,
		SalaID:     body.SalaID,
		DiaSemana:  strings.ToLower(strings.TrimSpace(body.DiaSemana)),
	}
	ctx := c.Request().Context()
	if err := h.Cartelera.Update(ctx, listing); err != nil {
		switch {
		case errors.Is(err, repository.ErrCarteleraNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "cartelera no encontrada"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"message": "la funcion ya esta en cartelera"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "cartelera actualizada")
	return c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /cartelera/:id (admin).
func (h *CarteleraHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()
	if err := h.Cartelera.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCarteleraNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "cartelera no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "cartelera eliminada")
	return c.NoContent(http.StatusNoContent)
}
