// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// reservation engine and handlers to distinguish between failure
// scenarios, e.g. a missing row versus a uniqueness conflict.
package repository

import "errors"

// ErrConflict is returned when an insert or update cannot proceed because
// of conflicting state, such as creating a room whose name is already
// taken. Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSalaNotFound is returned when a room lookup yields no rows.
var ErrSalaNotFound = errors.New("sala not found")

// ErrAsientoNotFound is returned when a seat lookup yields no rows.
var ErrAsientoNotFound = errors.New("asiento not found")

// ErrPeliculaNotFound is returned when a movie lookup yields no rows.
var ErrPeliculaNotFound = errors.New("pelicula not found")

// ErrHorarioNotFound is returned when a showtime lookup yields no rows.
var ErrHorarioNotFound = errors.New("horario not found")

// ErrCarteleraNotFound is returned when a listing lookup yields no rows.
var ErrCarteleraNotFound = errors.New("cartelera entry not found")

// ErrPagoNotFound is returned when a payment lookup yields no rows.
var ErrPagoNotFound = errors.New("pago not found")

// ErrBoletoNotFound is returned when a ticket lookup yields no rows.
var ErrBoletoNotFound = errors.New("boleto not found")

// ErrUsuarioNotFound is returned when a user lookup yields no rows.
var ErrUsuarioNotFound = errors.New("usuario not found")

// ErrProductoNotFound is returned when a candy item lookup yields no rows.
var ErrProductoNotFound = errors.New("producto not found")

// ErrCorreoExists is returned when registering a user with an email that
// is already taken.
var ErrCorreoExists = errors.New("correo already exists")
