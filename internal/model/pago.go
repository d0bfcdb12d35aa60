package model

import "time"

// Métodos de pago accepted at the box office.
const (
	PagoTarjeta  = "tarjeta"
	PagoEfectivo = "efectivo"
	PagoTerceros = "terceros"
)

// ValidMetodoPago reports whether m is an accepted payment method.
func ValidMetodoPago(m string) bool {
	return m == PagoTarjeta || m == PagoEfectivo || m == PagoTerceros
}

// Pago is a monetary transaction for a user. One payment may back several
// tickets when a batch of seats is purchased at once; Folio is the public
// transaction reference printed on the receipt.
//
// Fields:
//
//	ID       – primary key identifier (idCompra).
//	UsuarioID – buyer.
//	Cantidad – amount in whole currency units, positive.
//	Metodo   – tarjeta, efectivo or terceros.
//	Folio    – public transaction reference (UUID).
//	CreadoEn – purchase timestamp.
type Pago struct {
	ID        uint64    `json:"idCompra"`     // pagos.id_compra
	UsuarioID uint64    `json:"idUsuario"`    // pagos.id_usuario
	Cantidad  uint32    `json:"cantidadPago"` // pagos.cantidad_pago
	Metodo    string    `json:"metodoPago"`   // pagos.metodo_pago
	Folio     string    `json:"folio"`        // pagos.folio
	CreadoEn  time.Time `json:"creadoEn"`     // pagos.creado_en
}

// Boleto is proof of a single seat reservation tied to one payment. The
// referenced seat is flipped to occupied atomically with ticket creation
// and released when the ticket is destroyed.
//
// Fields:
//
//	ID          – primary key identifier.
//	PeliculaID  – movie being watched.
//	HorarioID   – showtime of the function.
//	SalaID      – room where the seat lives.
//	PagoID      – payment backing this ticket.
//	AsientoID   – reserved seat.
//	FechaReserva – when the reservation was made.
type Boleto struct {
	ID           uint64    `json:"idBoleto"`           // boletos.id_boleto
	PeliculaID   uint64    `json:"idPelicula"`         // boletos.id_pelicula
	HorarioID    uint64    `json:"idHorario"`          // boletos.id_horario
	SalaID       uint64    `json:"idSala"`             // boletos.id_sala
	PagoID       uint64    `json:"idPago"`             // boletos.id_compra
	AsientoID    uint64    `json:"idAsientoReservado"` // boletos.id_asiento_reservado
	FechaReserva time.Time `json:"fechaReserva"`       // boletos.fecha_reserva
}
