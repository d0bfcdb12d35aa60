package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
	"github.com/cinelatam/taquilla-api/internal/reservation"
)

// PagoHandler exposes payment queries and the refund cascade.
type PagoHandler struct {
	Engine *reservation.Engine
	Pagos  *repository.PagoRepo
	// PublishEvents mirrors BoletoHandler's flag.
	PublishEvents bool
}

// List handles GET /pagos (admin): every payment, newest first.
func (h *PagoHandler) List(c echo.Context) error {
	pagos, err := h.Pagos.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, pagos)
}

// Mine handles GET /pagos/mios: the authenticated user's own payments.
func (h *PagoHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	pagos, err := h.Pagos.ListByUsuario(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, pagos)
}

// Get handles GET /pagos/:id. Clients can only read their own payments;
// admins can read any.
func (h *PagoHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Pagos.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPagoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "pago no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if getRol(c) != model.RolAdmin {
		userID, err := getUserID(c)
		if err != nil || p.UsuarioID != userID {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
	}
	return c.JSON(http.StatusOK, p)
}

// Refund handles DELETE /pagos/:id: cancels every ticket backed by the
// payment, releases their seats and removes the payment, all in one
// transaction driven by the engine.
func (h *PagoHandler) Refund(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()

	// Clients may only refund their own purchases.
	if getRol(c) != model.RolAdmin {
		userID, uidErr := getUserID(c)
		p, err := h.Pagos.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPagoNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "pago no encontrado"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if uidErr != nil || p.UsuarioID != userID {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
	}

	_, boletos, err := h.Engine.RefundPayment(ctx, getRol(c), id, requestMeta(c))
	if err != nil {
		return engineError(c, err)
	}
	if h.PublishEvents {
		for _, b := range boletos {
			go publishCancelled(b, "reembolso")
		}
	}
	return c.NoContent(http.StatusNoContent)
}
