package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

// ContactoHandler receives public contact-form messages and lets admins
// read them back.
type ContactoHandler struct {
	Mensajes *repository.ContactoRepo
	Audit    audit.Recorder
}

// Create handles POST /contacto (public).
func (h *ContactoHandler) Create(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Message = strings.TrimSpace(body.Message)
	if body.Name == "" || body.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name y message son obligatorios"})
	}
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email invalido"})
	}
	m := &model.ContactMessage{Name: body.Name, Email: body.Email, Message: body.Message}
	ctx := c.Request().Context()
	if err := h.Mensajes.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save message"})
	}
	h.Audit.Record(ctx, requestMeta(c), "mensaje de contacto recibido: "+m.Email)
	return c.JSON(http.StatusCreated, m)
}

// List handles GET /contacto (admin).
func (h *ContactoHandler) List(c echo.Context) error {
	messages, err := h.Mensajes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, messages)
}
