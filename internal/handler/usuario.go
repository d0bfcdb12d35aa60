package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
	"github.com/cinelatam/taquilla-api/internal/reservation"
	"github.com/cinelatam/taquilla-api/internal/utils"
)

// UsuarioHandler exposes admin account management. The guard that the
// system always keeps at least one admin runs inside a transaction so two
// concurrent downgrades cannot both slip through.
type UsuarioHandler struct {
	Usuarios   *repository.UsuarioRepo
	Audit      audit.Recorder
	BcryptCost int
}

// List handles GET /usuarios (admin).
func (h *UsuarioHandler) List(c echo.Context) error {
	users, err := h.Usuarios.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /usuarios/:id (admin).
func (h *UsuarioHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Usuarios.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "usuario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, u)
}

// Update handles PUT /usuarios/:id (admin). Absent fields keep their
// current value; a role change away from admin is checked against the
// last-admin guard.
func (h *UsuarioHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body struct {
		Nombre     *string `json:"nombreUsuario"`
		Apellido   *string `json:"apellidoUsuario"`
		Edad       *uint32 `json:"edadUsuario"`
		Correo     *string `json:"correoUsuario"`
		Telefono   *string `json:"telefonoUsuario"`
		Contrasena *string `json:"contrasena"`
		Rol        *string `json:"tipoUsuario"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if body.Rol != nil && !model.ValidRol(*body.Rol) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "tipoUsuario invalido"})
	}

	ctx := c.Request().Context()
	tx, err := h.Usuarios.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	u, err := h.Usuarios.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "usuario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if body.Rol != nil && u.Rol == model.RolAdmin && *body.Rol != model.RolAdmin {
		n, err := h.Usuarios.CountAdminsTx(ctx, tx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if n <= 1 {
			h.Audit.Record(ctx, requestMeta(c), "degradacion rechazada: ultimo admin")
			return engineError(c, reservation.ErrLastAdmin)
		}
	}

	if body.Nombre != nil && strings.TrimSpace(*body.Nombre) != "" {
		u.Nombre = strings.TrimSpace(*body.Nombre)
	}
	if body.Apellido != nil {
		u.Apellido = strings.TrimSpace(*body.Apellido)
	}
	if body.Edad != nil {
		u.Edad = *body.Edad
	}
	if body.Correo != nil && strings.TrimSpace(*body.Correo) != "" {
		u.Correo = strings.ToLower(strings.TrimSpace(*body.Correo))
	}
	if body.Telefono != nil {
		u.Telefono = strings.TrimSpace(*body.Telefono)
	}
	if body.Contrasena != nil && *body.Contrasena != "" {
		if len(*body.Contrasena) < 8 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "la contrasena requiere al menos 8 caracteres"})
		}
		hash, err := utils.HashPassword(*body.Contrasena, h.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
		}
		u.Contrasena = hash
	}
	if body.Rol != nil {
		u.Rol = *body.Rol
	}

	if err := h.Usuarios.UpdateTx(ctx, tx, u); err != nil {
		if errors.Is(err, repository.ErrCorreoExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "correo ya registrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed = true
	h.Audit.Record(ctx, requestMeta(c), "usuario actualizado: "+u.Correo)
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /usuarios/:id (admin), enforcing the last-admin
// guard inside the same transaction as the delete.
func (h *UsuarioHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Usuarios.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	u, err := h.Usuarios.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "usuario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if u.Rol == model.RolAdmin {
		n, err := h.Usuarios.CountAdminsTx(ctx, tx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if n <= 1 {
			h.Audit.Record(ctx, requestMeta(c), "borrado rechazado: ultimo admin")
			return engineError(c, reservation.ErrLastAdmin)
		}
	}
	if err := h.Usuarios.DeleteTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	committed = true
	h.Audit.Record(ctx, requestMeta(c), "usuario eliminado: "+u.Correo)
	return c.NoContent(http.StatusNoContent)
}
