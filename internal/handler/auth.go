package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/auth"
	"github.com/cinelatam/taquilla-api/internal/middleware"
	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
	"github.com/cinelatam/taquilla-api/internal/utils"
)

// AuthHandler implements registration, login, logout and session lookup.
type AuthHandler struct {
	Usuarios   *repository.UsuarioRepo
	Revoked    auth.RevocationStore
	Audit      audit.Recorder
	JWTSecret  string
	TTLMin     int
	BcryptCost int
}

// Register handles POST /usuarios. New accounts always start as cliente;
// only an admin can promote them afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Nombre     string `json:"nombreUsuario"`
		Apellido   string `json:"apellidoUsuario"`
		Edad       uint32 `json:"edadUsuario"`
		Correo     string `json:"correoUsuario"`
		Telefono   string `json:"telefonoUsuario"`
		Contrasena string `json:"contrasena"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	body.Nombre = strings.TrimSpace(body.Nombre)
	body.Correo = strings.TrimSpace(body.Correo)
	if body.Nombre == "" || body.Correo == "" || body.Contrasena == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "nombre, correo y contrasena son obligatorios"})
	}
	if !strings.Contains(body.Correo, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "correo invalido"})
	}
	if len(body.Contrasena) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "la contrasena requiere al menos 8 caracteres"})
	}

	hash, err := utils.HashPassword(body.Contrasena, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}
	u := &model.Usuario{
		Nombre:     body.Nombre,
		Apellido:   strings.TrimSpace(body.Apellido),
		Edad:       body.Edad,
		Correo:     body.Correo,
		Telefono:   strings.TrimSpace(body.Telefono),
		Contrasena: hash,
		Rol:        model.RolCliente,
	}
	if err := h.Usuarios.Create(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrCorreoExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "correo ya registrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	h.Audit.Record(c.Request().Context(), requestMeta(c), "usuario registrado: "+u.Correo)
	return c.JSON(http.StatusCreated, u)
}

// Login handles POST /usuarios/login and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Correo     string `json:"correoUsuario"`
		Contrasena string `json:"contrasena"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	meta := requestMeta(c)

	u, err := h.Usuarios.GetByCorreo(c.Request().Context(), body.Correo)
	if err != nil || !utils.VerifyPassword(u.Contrasena, body.Contrasena) {
		// Same response for unknown email and wrong password.
		h.Audit.Record(c.Request().Context(), meta, "login fallido: "+strings.TrimSpace(body.Correo))
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "credenciales invalidas"})
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, u.Rol, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign token"})
	}
	meta.Usuario = u.Correo
	h.Audit.Record(c.Request().Context(), meta, "login correcto")
	return c.JSON(http.StatusOK, echo.Map{
		"token":     tok.Token,
		"expiraEn":  tok.Exp,
		"idUsuario": u.ID,
		"rol":       u.Rol,
	})
}

// Logout handles POST /usuarios/logout. The presented token goes into the
// revocation store for the remainder of its lifetime.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, _ := c.Get(middleware.CtxToken).(string)
	exp, _ := c.Get(middleware.CtxTokenExp).(time.Time)
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "no active session"})
	}
	ttl := time.Until(exp)
	if err := h.Revoked.Revoke(c.Request().Context(), raw, ttl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not revoke session"})
	}
	h.Audit.Record(c.Request().Context(), requestMeta(c), "logout")
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /usuarios/me.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
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
