package model

import "strconv"

// Seat availability states. A seat is either free for sale or occupied by
// an issued ticket; no intermediate hold state exists, reservation flips
// the state atomically.
const (
	SeatAvailable = "disponible"
	SeatOccupied  = "ocupado"
)

// Sala describes an auditorium with a fixed seat grid. The grid invariant
// CantidadAsientos == CantidadFilas * AsientosPorFila is validated before a
// room or its seats are ever written.
//
// Fields:
//
//	ID              – primary key identifier.
//	Nombre          – unique room name.
//	CantidadAsientos – total number of seats in the grid.
//	CantidadFilas   – number of rows (labelled A, B, C...).
//	AsientosPorFila – seats per row (numbered from 1).
type Sala struct {
	ID               uint64 `json:"idSala"`           // salas.id_sala
	Nombre           string `json:"nombreSala"`       // salas.nombre_sala
	CantidadAsientos uint32 `json:"cantidadAsientos"` // salas.cantidad_asientos
	CantidadFilas    uint32 `json:"cantidadFilas"`    // salas.cantidad_filas
	AsientosPorFila  uint32 `json:"asientosPorFila"`  // salas.asientos_por_fila
}

// Asiento is an individually addressable (row, number) slot within a room.
// Seats are unique per (sala, fila, numero) and carry the availability
// state that the reservation engine flips.
//
// Fields:
//
//	ID     – primary key identifier.
//	SalaID – room to which this seat belongs.
//	Fila   – row letter (A, B, ... AA).
//	Numero – seat number within the row, 1-based.
//	Estado – SeatAvailable or SeatOccupied.
type Asiento struct {
	ID     uint64 `json:"idAsiento"`     // asientos.id_asiento
	SalaID uint64 `json:"idSalaAsiento"` // asientos.id_sala
	Fila   string `json:"filaAsiento"`   // asientos.fila_asiento
	Numero uint32 `json:"numeroAsiento"` // asientos.numero_asiento
	Estado string `json:"estadoAsiento"` // asientos.estado_asiento
}

// Etiqueta returns the printable seat label used on receipts, e.g. "B-4".
func (a Asiento) Etiqueta() string {
	return a.Fila + "-" + strconv.FormatUint(uint64(a.Numero), 10)
}
