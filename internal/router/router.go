// Package router wires HTTP routes to handlers and applies the auth and
// role middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/auth"
	"github.com/cinelatam/taquilla-api/internal/handler"
	"github.com/cinelatam/taquilla-api/internal/middleware"
	"github.com/cinelatam/taquilla-api/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Usuarios  *handler.UsuarioHandler
	Peliculas *handler.PeliculaHandler
	Horarios  *handler.HorarioHandler
	Salas     *handler.SalaHandler
	Asientos  *handler.AsientoHandler
	Cartelera *handler.CarteleraHandler
	Boletos   *handler.BoletoHandler
	Pagos     *handler.PagoHandler
	Dulceria  *handler.DulceriaHandler
	Contacto  *handler.ContactoHandler
	Logs      *handler.LogHandler
}

// Register mounts all routes. Register/login/contact/healthz are public;
// everything else requires a Bearer token, with mutations of the catalog,
// rooms, users and logs restricted to admins.
func Register(e *echo.Echo, h Handlers, jwtSecret string, revoked auth.RevocationStore) {
	e.GET("/healthz", handler.Health)
	e.POST("/usuarios", h.Auth.Register)
	e.POST("/usuarios/login", h.Auth.Login)
	e.POST("/contacto", h.Contacto.Create)

	jwt := middleware.JWTAuth(jwtSecret, revoked)
	vende := middleware.RequireRole(model.RolCliente, model.RolAdmin)
	admin := middleware.RequireRole(model.RolAdmin)

	// Session endpoints for any authenticated role.
	sesion := e.Group("/usuarios", jwt)
	sesion.POST("/logout", h.Auth.Logout)
	sesion.GET("/me", h.Auth.Me)

	// Authenticated catalog reads, any role.
	lectura := e.Group("", jwt)
	lectura.GET("/peliculas", h.Peliculas.List)
	lectura.GET("/peliculas/:id", h.Peliculas.Get)
	lectura.GET("/horarios", h.Horarios.List)
	lectura.GET("/horarios/:id", h.Horarios.Get)
	lectura.GET("/salas", h.Salas.Search)
	lectura.GET("/salas/:id", h.Salas.Get)
	lectura.GET("/asientos", h.Asientos.Search)
	lectura.GET("/asientos/:id", h.Asientos.Get)
	lectura.GET("/cartelera", h.Cartelera.List)
	lectura.GET("/dulceria", h.Dulceria.List)
	lectura.GET("/dulceria/:id", h.Dulceria.Get)

	// Ticketing, for roles allowed to buy.
	boletos := e.Group("/boletos", jwt, vende)
	boletos.POST("", h.Boletos.Reserve)
	boletos.GET("/search", h.Boletos.Search)
	boletos.GET("/:id", h.Boletos.Get)
	boletos.PUT("/:id", h.Boletos.Reassign)
	boletos.DELETE("/:id", h.Boletos.Cancel)

	pagos := e.Group("/pagos", jwt, vende)
	pagos.GET("/mios", h.Pagos.Mine)
	pagos.GET("/:id", h.Pagos.Get)
	pagos.DELETE("/:id", h.Pagos.Refund)

	// Administration.
	adm := e.Group("", jwt, admin)
	adm.GET("/usuarios", h.Usuarios.List)
	adm.GET("/usuarios/:id", h.Usuarios.Get)
	adm.PUT("/usuarios/:id", h.Usuarios.Update)
	adm.DELETE("/usuarios/:id", h.Usuarios.Delete)
	adm.POST("/peliculas", h.Peliculas.Create)
	adm.PUT("/peliculas/:id", h.Peliculas.Update)
	adm.DELETE("/peliculas/:id", h.Peliculas.Delete)
	adm.POST("/horarios", h.Horarios.Create)
	adm.PUT("/horarios/:id", h.Horarios.Update)
	adm.DELETE("/horarios/:id", h.Horarios.Delete)
	adm.POST("/salas", h.Salas.Create)
	adm.PUT("/salas/:id", h.Salas.Update)
	adm.DELETE("/salas/:id", h.Salas.Delete)
	adm.POST("/cartelera", h.Cartelera.Create)
	adm.PUT("/cartelera/:id", h.Cartelera.Update)
	adm.DELETE("/cartelera/:id", h.Cartelera.Delete)
	adm.POST("/dulceria", h.Dulceria.Create)
	adm.PUT("/dulceria/:id", h.Dulceria.Update)
	adm.DELETE("/dulceria/:id", h.Dulceria.Delete)
	adm.GET("/contacto", h.Contacto.List)
	adm.GET("/pagos", h.Pagos.List)
	adm.GET("/logs", h.Logs.List)
}
