package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

// SalaHandler manages rooms and their seat grids. The layout invariant
// (total == rows * seats per row) is validated before any write, and
// layout changes are refused while any seat of the room is occupied.
type SalaHandler struct {
	Salas    *repository.SalaRepo
	Asientos *repository.AsientoRepo
	Audit    audit.Recorder
}

type salaBody struct {
	Nombre           string `json:"nombreSala"`
	CantidadAsientos uint32 `json:"cantidadAsientos"`
	CantidadFilas    uint32 `json:"cantidadFilas"`
	AsientosPorFila  uint32 `json:"asientosPorFila"`
}

func (b salaBody) validate() string {
	if strings.TrimSpace(b.Nombre) == "" {
		return "nombreSala es obligatorio"
	}
	if b.CantidadFilas == 0 || b.AsientosPorFila == 0 {
		return "cantidadFilas y asientosPorFila deben ser mayores a cero"
	}
	if b.CantidadAsientos != b.CantidadFilas*b.AsientosPorFila {
		return "cantidadAsientos debe ser igual a cantidadFilas por asientosPorFila"
	}
	return ""
}

// Create handles POST /salas (admin): inserts the room and bulk-generates
// its seat grid, rows labelled A.. and seats numbered from 1, all
// disponible.
func (h *SalaHandler) Create(c echo.Context) error {
	var body salaBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx := c.Request().Context()
	sala := &model.Sala{
		Nombre:           strings.TrimSpace(body.Nombre),
		CantidadAsientos: body.CantidadAsientos,
		CantidadFilas:    body.CantidadFilas,
		AsientosPorFila:  body.AsientosPorFila,
	}

	// Room and seat grid land in one transaction, so a room can never be
	// observed without its seats.
	tx, err := h.Salas.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()
	if err := h.Salas.CreateTx(ctx, tx, sala); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "nombreSala ya existe"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	if err := h.Asientos.CreateBulkTx(ctx, tx, buildGrid(sala)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seats"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed = true

	h.Audit.Record(ctx, requestMeta(c), "sala creada: "+sala.Nombre)
	return c.JSON(http.StatusCreated, sala)
}

// buildGrid materializes the seat rows of a room's layout.
func buildGrid(sala *model.Sala) []model.Asiento {
	seats := make([]model.Asiento, 0, sala.CantidadFilas*sala.AsientosPorFila)
	for f := uint32(0); f < sala.CantidadFilas; f++ {
		fila := indexToRowLabel(int(f))
		for n := uint32(1); n <= sala.AsientosPorFila; n++ {
			seats = append(seats, model.Asiento{
				SalaID: sala.ID,
				Fila:   fila,
				Numero: n,
				Estado: model.SeatAvailable,
			})
		}
	}
	return seats
}

// Search handles GET /salas with optional id, nombre and cantidad filters.
func (h *SalaHandler) Search(c echo.Context) error {
	salas, err := h.Salas.Search(c.Request().Context(),
		queryUint(c, "id"), c.QueryParam("nombre"), uint32(queryUint(c, "cantidad")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, salas)
}

// Get handles GET /salas/:id and includes the room's seats.
func (h *SalaHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()
	sala, err := h.Salas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSalaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "sala no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seats, err := h.Asientos.GetBySala(ctx, sala.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sala": sala, "asientos": seats})
}

// Update handles PUT /salas/:id (admin). A layout change deletes and
// regenerates the full seat grid, which is only allowed while no seat of
// the room is occupied.
func (h *SalaHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body salaBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx := c.Request().Context()
	cur, err := h.Salas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSalaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "sala no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	layoutChanged := cur.CantidadAsientos != body.CantidadAsientos ||
		cur.CantidadFilas != body.CantidadFilas ||
		cur.AsientosPorFila != body.AsientosPorFila

	tx, err := h.Salas.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if layoutChanged {
		if status, msg := h.occupiedGuard(ctx, tx, cur.ID); status != 0 {
			h.Audit.Record(ctx, requestMeta(c), "cambio de sala rechazado: asientos ocupados")
			return c.JSON(status, echo.Map{"message": msg})
		}
	}

	cur.Nombre = strings.TrimSpace(body.Nombre)
	cur.CantidadAsientos = body.CantidadAsientos
	cur.CantidadFilas = body.CantidadFilas
	cur.AsientosPorFila = body.AsientosPorFila
	if err := h.Salas.UpdateTx(ctx, tx, cur); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "nombreSala ya existe"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if layoutChanged {
		if err := h.Asientos.DeleteBySalaTx(ctx, tx, cur.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if err := h.Asientos.CreateBulkTx(ctx, tx, buildGrid(cur)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed = true

	h.Audit.Record(ctx, requestMeta(c), "sala actualizada: "+cur.Nombre)
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /salas/:id (admin), refused while any seat is
// occupied.
func (h *SalaHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()

	tx, err := h.Salas.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if status, msg := h.occupiedGuard(ctx, tx, id); status != 0 {
		h.Audit.Record(ctx, requestMeta(c), "borrado de sala rechazado: asientos ocupados")
		return c.JSON(status, echo.Map{"message": msg})
	}
	if err := h.Asientos.DeleteBySalaTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Salas.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrSalaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "sala no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed = true

	h.Audit.Record(ctx, requestMeta(c), "sala eliminada")
	return c.NoContent(http.StatusNoContent)
}

// occupiedGuard evaluates live seat state at request time. It returns a
// non-zero status and message when the room still has occupied seats.
func (h *SalaHandler) occupiedGuard(ctx context.Context, tx *sql.Tx, salaID uint64) (int, string) {
	n, err := h.Asientos.CountOccupiedTx(ctx, tx, salaID)
	if err != nil {
		return http.StatusInternalServerError, "db error"
	}
	if n > 0 {
		return http.StatusConflict, "la sala tiene asientos ocupados"
	}
	return 0, ""
}
