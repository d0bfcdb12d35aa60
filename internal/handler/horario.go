package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

// HorarioHandler is the showtime CRUD surface.
type HorarioHandler struct {
	Horarios *repository.HorarioRepo
	Audit    audit.Recorder
}

var (
	horaRe  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	fechaRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type horarioBody struct {
	HoraProgramada string `json:"horaProgramada"`
	FechaEmision   string `json:"fechaDeEmision"`
	Turno          string `json:"turno"`
}

func (b horarioBody) validate() string {
	if !horaRe.MatchString(b.HoraProgramada) {
		return "horaProgramada debe tener formato HH:MM:SS"
	}
	if !fechaRe.MatchString(b.FechaEmision) {
		return "fechaDeEmision debe tener formato YYYY-MM-DD"
	}
	if !model.ValidTurno(b.Turno) {
		return "turno invalido"
	}
	return ""
}

// Create handles POST /horarios (admin).
func (h *HorarioHandler) Create(c echo.Context) error {
	var body horarioBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	horario := &model.Horario{
		HoraProgramada: body.HoraProgramada,
		FechaEmision:   body.FechaEmision,
		Turno:          body.Turno,
	}
	ctx := c.Request().Context()
	if err := h.Horarios.Create(ctx, horario); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create showtime"})
	}
	h.Audit.Record(ctx, requestMeta(c), "horario creado")
	return c.JSON(http.StatusCreated, horario)
}

// List handles GET /horarios.
func (h *HorarioHandler) List(c echo.Context) error {
	horarios, err := h.Horarios.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, horarios)
}

// Get handles GET /horarios/:id.
func (h *HorarioHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	horario, err := h.Horarios.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHorarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "horario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, horario)
}

// Update handles PUT /horarios/:id (admin).
func (h *HorarioHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body horarioBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	horario := &model.Horario{
		ID:             id,
		HoraProgramada: body.HoraProgramada,
		FechaEmision:   body.FechaEmision,
		Turno:          body.Turno,
	}
	ctx := c.Request().Context()
	if err := h.Horarios.Update(ctx, horario); err != nil {
		if errors.Is(err, repository.ErrHorarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "horario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "horario actualizado")
	return c.JSON(http.StatusOK, horario)
}

// Delete handles DELETE /horarios/:id (admin).
func (h *HorarioHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()
	if err := h.Horarios.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHorarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "horario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "horario eliminado")
	return c.NoContent(http.StatusNoContent)
}
