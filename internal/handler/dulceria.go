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

// DulceriaHandler is the candy-shop product CRUD surface.
type DulceriaHandler struct {
	Productos *repository.DulceriaRepo
	Audit     audit.Recorder
}

type productoBody struct {
	Nombre string `json:"nombreProducto"`
	Precio uint32 `json:"precioProducto"`
}

func (b productoBody) validate() string {
	if strings.TrimSpace(b.Nombre) == "" {
		return "nombreProducto es obligatorio"
	}
	if b.Precio == 0 {
		return "precioProducto debe ser mayor a cero"
	}
	return ""
}

// Create handles POST /dulceria (admin).
func (h *DulceriaHandler) Create(c echo.Context) error {
	var body productoBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	p := &model.Producto{Nombre: strings.TrimSpace(body.Nombre), Precio: body.Precio}
	ctx := c.Request().Context()
	if err := h.Productos.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}
	h.Audit.Record(ctx, requestMeta(c), "producto creado: "+p.Nombre)
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /dulceria.
func (h *DulceriaHandler) List(c echo.Context) error {
	products, err := h.Productos.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /dulceria/:id.
func (h *DulceriaHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Productos.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "producto no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /dulceria/:id (admin).
func (h *DulceriaHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body productoBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	p := &model.Producto{ID: id, Nombre: strings.TrimSpace(body.Nombre), Precio: body.Precio}
	ctx := c.Request().Context()
	if err := h.Productos.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProductoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "producto no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "producto actualizado: "+p.Nombre)
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /dulceria/:id (admin).
func (h *DulceriaHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()
	if err := h.Productos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "producto no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	h.Audit.Record(ctx, requestMeta(c), "producto eliminado")
	return c.NoContent(http.StatusNoContent)
}
