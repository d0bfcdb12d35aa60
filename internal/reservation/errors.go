package reservation

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors returned by the engine. Handlers translate them to HTTP
// status codes; the engine itself knows nothing about transports.
var (
	// ErrNotFound marks a reference to a movie, showtime, room, seat,
	// ticket or payment that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an operation the actor's role does not allow.
	ErrForbidden = errors.New("role not allowed to perform this operation")

	// ErrLastAdmin rejects deleting or downgrading the only remaining
	// admin account.
	ErrLastAdmin = errors.New("cannot remove the last admin account")
)

// ValidationError reports malformed input rejected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(msg string) error { return &ValidationError{Msg: msg} }

// SeatRef addresses a seat by position within the request's room.
type SeatRef struct {
	Fila   string `json:"filaAsiento"`
	Numero uint32 `json:"numeroAsiento"`
}

// Label returns the printable form, e.g. "B-4".
func (s SeatRef) Label() string {
	return s.Fila + "-" + strconv.FormatUint(uint64(s.Numero), 10)
}

// SeatConflictError rejects a reservation because one or more requested
// seats were already occupied. Seats holds exactly the conflicting
// positions; none of the requested seats were reserved.
type SeatConflictError struct {
	Seats []SeatRef
}

func (e *SeatConflictError) Error() string {
	labels := make([]string, len(e.Seats))
	for i, s := range e.Seats {
		labels[i] = s.Label()
	}
	return "seats not available: " + strings.Join(labels, ", ")
}
