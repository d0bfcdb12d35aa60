package model

import "time"

// Producto is a candy-shop item.
type Producto struct {
	ID     uint64 `json:"idProducto"`     // dulceria.id_producto
	Nombre string `json:"nombreProducto"` // dulceria.nombre_producto
	Precio uint32 `json:"precioProducto"` // dulceria.precio_producto
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        uint64    `json:"id"`         // contact_messages.id
	Name      string    `json:"name"`       // contact_messages.name
	Email     string    `json:"email"`      // contact_messages.email
	Message   string    `json:"message"`    // contact_messages.message
	CreatedAt time.Time `json:"created_at"` // contact_messages.created_at
}
