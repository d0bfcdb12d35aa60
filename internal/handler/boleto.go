package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/queue"
	"github.com/cinelatam/taquilla-api/internal/receipt"
	"github.com/cinelatam/taquilla-api/internal/repository"
	"github.com/cinelatam/taquilla-api/internal/reservation"
	queue_publisher "github.com/cinelatam/taquilla-api/internal/service"
)

// BoletoHandler drives ticket issuance through the reservation engine and
// exposes ticket queries, reassignment and cancellation.
type BoletoHandler struct {
	Engine   *reservation.Engine
	Boletos  *repository.BoletoRepo
	Usuarios *repository.UsuarioRepo
	Encoder  receipt.Encoder
	Venue    string
	// PublishEvents controls best-effort broker notifications; disabled in
	// tests and when no broker is configured.
	PublishEvents bool
}

// Reserve handles POST /boletos: an all-or-nothing batch purchase. The
// response carries the payment, the tickets and the rendered receipt with
// its QR payload.
func (h *BoletoHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var body struct {
		PeliculaID uint64                `json:"idPelicula"`
		SalaID     uint64                `json:"idSala"`
		Asientos   []reservation.SeatRef `json:"asientos"`
		MetodoPago string                `json:"metodoPago"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	for i := range body.Asientos {
		body.Asientos[i].Fila = normalizeRowLabel(body.Asientos[i].Fila)
	}

	ctx := c.Request().Context()
	res, err := h.Engine.Reserve(ctx, reservation.ReserveInput{
		UserID:     userID,
		Rol:        getRol(c),
		PeliculaID: body.PeliculaID,
		SalaID:     body.SalaID,
		Seats:      body.Asientos,
		Metodo:     body.MetodoPago,
		Meta:       requestMeta(c),
	})
	if err != nil {
		return engineError(c, err)
	}

	labels := make([]string, len(res.Asientos))
	for i, a := range res.Asientos {
		labels[i] = a.Etiqueta()
	}
	comprador := ""
	if u, err := h.Usuarios.GetByID(ctx, userID); err == nil {
		comprador = u.Nombre + " " + u.Apellido
	}
	data := receipt.Data{
		Venue:       h.Venue,
		Folio:       res.Pago.Folio,
		Comprador:   comprador,
		Pelicula:    res.Pelicula.Nombre,
		Funcion:     res.Horario.FechaEmision,
		Hora:        res.Horario.HoraProgramada,
		Turno:       res.Horario.Turno,
		Sala:        res.Sala.Nombre,
		Asientos:    labels,
		Metodo:      res.Pago.Metodo,
		Total:       res.Pago.Cantidad,
		FechaCompra: res.Pago.CreadoEn,
	}
	body64, err := h.Encoder.Encode(data.Render())
	if err != nil {
		// The reservation is committed; a QR failure must not undo it.
		log.Printf("boleto: qr encode failed for folio %s: %v", res.Pago.Folio, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not render receipt"})
	}

	if h.PublishEvents {
		go publishIssued(res, labels)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"pago":    res.Pago,
		"boletos": res.Boletos,
		"recibo": echo.Map{
			"texto": data.Render(),
			"qr":    body64,
		},
	})
}

func publishIssued(res *reservation.Reservation, labels []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishTicketIssued(ctx, queue.TicketIssuedEvent{
		PagoID:    res.Pago.ID,
		Folio:     res.Pago.Folio,
		UsuarioID: res.Pago.UsuarioID,
		Pelicula:  res.Pelicula.Nombre,
		Sala:      res.Sala.Nombre,
		Funcion:   res.Horario.FechaEmision,
		Hora:      res.Horario.HoraProgramada,
		Turno:     res.Horario.Turno,
		Asientos:  labels,
		Total:     res.Pago.Cantidad,
		EmitidoEn: res.Pago.CreadoEn.UTC().Format(time.RFC3339),
	})
}

func publishCancelled(b model.Boleto, motivo string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishTicketCancelled(ctx, queue.TicketCancelledEvent{
		BoletoID:    b.ID,
		PagoID:      b.PagoID,
		AsientoID:   b.AsientoID,
		Motivo:      motivo,
		CanceladoEn: time.Now().UTC().Format(time.RFC3339),
	})
}

// Search handles GET /boletos/search with optional id, pelicula, sala,
// asiento and pago criteria.
func (h *BoletoHandler) Search(c echo.Context) error {
	boletos, err := h.Boletos.Search(c.Request().Context(),
		queryUint(c, "id"), queryUint(c, "pelicula"), queryUint(c, "sala"),
		queryUint(c, "asiento"), queryUint(c, "pago"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, boletos)
}

// Get handles GET /boletos/:id.
func (h *BoletoHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Boletos.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBoletoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "boleto no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, b)
}

// Reassign handles PUT /boletos/:id, moving the ticket to another seat of
// the same room.
func (h *BoletoHandler) Reassign(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body struct {
		Fila   string `json:"filaAsiento"`
		Numero uint32 `json:"numeroAsiento"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	target := reservation.SeatRef{Fila: normalizeRowLabel(body.Fila), Numero: body.Numero}

	boleto, seat, err := h.Engine.ReassignSeat(c.Request().Context(), getRol(c), id, target, requestMeta(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"boleto": boleto, "asiento": seat})
}

// Cancel handles DELETE /boletos/:id: releases the seat and destroys the
// ticket, leaving the payment in place.
func (h *BoletoHandler) Cancel(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	boleto, err := h.Engine.CancelTicket(c.Request().Context(), getRol(c), id, requestMeta(c))
	if err != nil {
		return engineError(c, err)
	}
	if h.PublishEvents {
		go publishCancelled(*boleto, "cancelacion")
	}
	return c.NoContent(http.StatusNoContent)
}
