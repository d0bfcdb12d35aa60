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

// PeliculaHandler is the movie catalog CRUD surface.
type PeliculaHandler struct {
	Peliculas *repository.PeliculaRepo
	Horarios  *repository.HorarioRepo
	Audit     audit.Recorder
}

type peliculaBody struct {
	Nombre        string  `json:"nombrePelicula"`
	Director      string  `json:"directorPelicula"`
	Duracion      uint32  `json:"duracionPelicula"`
	Actores       string  `json:"actoresPelicula"`
	Clasificacion string  `json:"clasificacionPelicula"`
	Descripcion   string  `json:"descripcionPelicula"`
	Precio        uint32  `json:"precioBoleto"`
	Imagen        *string `json:"imagenPelicula"`
	HorarioID     uint64  `json:"idHorario"`
}

func (b peliculaBody) validate() string {
	if strings.TrimSpace(b.Nombre) == "" {
		return "nombrePelicula es obligatorio"
	}
	if b.Duracion == 0 {
		return "duracionPelicula debe ser mayor a cero"
	}
	if !model.Clasificaciones[b.Clasificacion] {
		return "clasificacionPelicula invalida"
	}
	if b.Precio == 0 {
		return "precioBoleto debe ser mayor a cero"
	}
	if b.HorarioID == 0 {
		return "idHorario es obligatorio"
	}
	return ""
}

func (b peliculaBody) toModel(id uint64) *model.Pelicula {
	return &model.Pelicula{
		ID:            id,
		Nombre:        strings.TrimSpace(b.Nombre),
		Director:      strings.TrimSpace(b.Director),
		Duracion:      b.Duracion,
		Actores:       b.Actores,
		Clasificacion: b.Clasificacion,
		Descripcion:   b.Descripcion,
		Precio:        b.Precio,
		Imagen:        b.Imagen,
		HorarioID:     b.HorarioID,
	}
}

// Create handles POST /peliculas (admin). The referenced showtime must
// exist.
func (h *PeliculaHandler) Create(c echo.Context) error {
	var body peliculaBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Horarios.GetByID(ctx, body.HorarioID); err != nil {
		if errors.Is(err, repository.ErrHorarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "horario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	p := body.toModel(0)
	if err := h.Peliculas.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	h.Audit.Record(ctx, requestMeta(c), "pelicula creada: "+p.Nombre)
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /peliculas.
func (h *PeliculaHandler) List(c echo.Context) error {
	movies, err := h.Peliculas.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /peliculas/:id.
func (h *PeliculaHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Peliculas.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPeliculaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pelicula no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /peliculas/:id (admin).
func (h *PeliculaHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body peliculaBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Horarios.GetByID(ctx, body.HorarioID); err != nil {
		if errors.Is(err, repository.ErrHorarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "horario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	p := body.toModel(id)
	if err := h.Peliculas.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPeliculaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pelicula no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "pelicula actualizada: "+p.Nombre)
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /peliculas/:id (admin).
func (h *PeliculaHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()
	if err := h.Peliculas.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPeliculaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pelicula no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "pelicula eliminada")
	return c.NoContent(http.StatusNoContent)
}
