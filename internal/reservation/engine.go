// Package reservation implements the atomic seat-reservation core. The
// engine issues tickets, cancels them and refunds payments inside single
// transactions, so seat state and ticket rows can never drift apart. It
// is transport-agnostic: role checks happen here, not only in HTTP
// middleware.
package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
)

// ReserveInput describes one purchase: a batch of seats for a movie in a
// room, paid with a single payment.
type ReserveInput struct {
	UserID     uint64
	Rol        string
	PeliculaID uint64
	SalaID     uint64
	Seats      []SeatRef
	Metodo     string
	Meta       audit.Meta
}

// Reservation is the outcome of a successful Reserve: one payment backing
// one ticket per seat, plus the resolved context the receipt needs.
type Reservation struct {
	Pago     model.Pago
	Boletos  []model.Boleto
	Asientos []model.Asiento
	Pelicula model.Pelicula
	Horario  model.Horario
	Sala     model.Sala
}

// Engine drives all reservation state changes.
type Engine struct {
	catalog  Catalog
	store    Store
	recorder audit.Recorder
	now      func() time.Time
}

// NewEngine wires an Engine. recorder must not be nil; pass audit.Nop{}
// when no trail is wanted.
func NewEngine(catalog Catalog, store Store, recorder audit.Recorder) *Engine {
	return &Engine{catalog: catalog, store: store, recorder: recorder, now: time.Now}
}

// canSell reports whether a role is allowed to buy or release tickets.
func canSell(rol string) bool {
	return rol == model.RolCliente || rol == model.RolAdmin
}

// Reserve issues tickets for every requested seat or for none of them.
// Occupied seats reject the whole batch with a SeatConflictError naming
// exactly the conflicting positions. Two concurrent reservations of the
// same seat can never both succeed: each seat is flipped with a
// conditional update inside the transaction.
func (e *Engine) Reserve(ctx context.Context, in ReserveInput) (*Reservation, error) {
	if !canSell(in.Rol) {
		e.recorder.Record(ctx, in.Meta, "reserva rechazada: rol sin permiso")
		return nil, ErrForbidden
	}
	if err := validateReserve(in); err != nil {
		e.recorder.Record(ctx, in.Meta, "reserva rechazada: "+err.Error())
		return nil, err
	}

	pelicula, err := e.catalog.PeliculaByID(ctx, in.PeliculaID)
	if err != nil {
		e.recorder.Record(ctx, in.Meta, "reserva rechazada: pelicula inexistente")
		return nil, fmt.Errorf("pelicula %d: %w", in.PeliculaID, err)
	}
	horario, err := e.catalog.HorarioByID(ctx, pelicula.HorarioID)
	if err != nil {
		e.recorder.Record(ctx, in.Meta, "reserva rechazada: horario inexistente")
		return nil, fmt.Errorf("horario %d: %w", pelicula.HorarioID, err)
	}
	sala, err := e.catalog.SalaByID(ctx, in.SalaID)
	if err != nil {
		e.recorder.Record(ctx, in.Meta, "reserva rechazada: sala inexistente")
		return nil, fmt.Errorf("sala %d: %w", in.SalaID, err)
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	// Resolve and partition the batch before writing anything, so the
	// conflict response lists every occupied seat, not just the first.
	asientos := make([]model.Asiento, 0, len(in.Seats))
	var conflicts []SeatRef
	for _, ref := range in.Seats {
		seat, err := tx.SeatByPosition(ctx, sala.ID, ref.Fila, ref.Numero)
		if err != nil {
			e.recorder.Record(ctx, in.Meta, "reserva rechazada: asiento "+ref.Label()+" inexistente")
			return nil, fmt.Errorf("asiento %s: %w", ref.Label(), err)
		}
		if seat.Estado != model.SeatAvailable {
			conflicts = append(conflicts, ref)
			continue
		}
		asientos = append(asientos, *seat)
	}
	if len(conflicts) > 0 {
		confErr := &SeatConflictError{Seats: conflicts}
		e.recorder.Record(ctx, in.Meta, "reserva rechazada: "+confErr.Error())
		return nil, confErr
	}

	pago := model.Pago{
		UsuarioID: in.UserID,
		Cantidad:  pelicula.Precio * uint32(len(asientos)),
		Metodo:    in.Metodo,
		Folio:     uuid.NewString(),
	}
	if err := tx.InsertPago(ctx, &pago); err != nil {
		return nil, err
	}

	ahora := e.now().UTC()
	boletos := make([]*model.Boleto, len(asientos))
	for i, seat := range asientos {
		boletos[i] = &model.Boleto{
			PeliculaID:   pelicula.ID,
			HorarioID:    horario.ID,
			SalaID:       sala.ID,
			PagoID:       pago.ID,
			AsientoID:    seat.ID,
			FechaReserva: ahora,
		}
	}
	if err := tx.InsertBoletos(ctx, boletos); err != nil {
		return nil, err
	}

	for i, seat := range asientos {
		ok, err := tx.OccupySeat(ctx, seat.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Lost the seat to a concurrent purchase between the read and
			// the flip. Roll back the whole batch.
			confErr := &SeatConflictError{Seats: []SeatRef{{Fila: seat.Fila, Numero: seat.Numero}}}
			e.recorder.Record(ctx, in.Meta, "reserva rechazada: "+confErr.Error())
			return nil, confErr
		}
		asientos[i].Estado = model.SeatOccupied
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	result := &Reservation{
		Pago:     pago,
		Asientos: asientos,
		Pelicula: *pelicula,
		Horario:  *horario,
		Sala:     *sala,
	}
	for _, b := range boletos {
		result.Boletos = append(result.Boletos, *b)
	}
	e.recorder.Record(ctx, in.Meta, fmt.Sprintf("reserva creada: folio %s, %d boletos", pago.Folio, len(boletos)))
	return result, nil
}

func validateReserve(in ReserveInput) error {
	if len(in.Seats) == 0 {
		return Validationf("at least one seat is required")
	}
	if !model.ValidMetodoPago(in.Metodo) {
		return Validationf("unknown payment method")
	}
	seen := make(map[SeatRef]bool, len(in.Seats))
	for _, ref := range in.Seats {
		if ref.Fila == "" || ref.Numero == 0 {
			return Validationf("seat position requires row and number")
		}
		if seen[ref] {
			return Validationf("seat " + ref.Label() + " requested twice")
		}
		seen[ref] = true
	}
	return nil
}

// CancelTicket destroys one ticket and releases its seat in a single
// transaction. The backing payment is left in place.
func (e *Engine) CancelTicket(ctx context.Context, rol string, id uint64, meta audit.Meta) (*model.Boleto, error) {
	if !canSell(rol) {
		e.recorder.Record(ctx, meta, "cancelacion rechazada: rol sin permiso")
		return nil, ErrForbidden
	}
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	boleto, err := tx.BoletoByID(ctx, id)
	if err != nil {
		e.recorder.Record(ctx, meta, fmt.Sprintf("cancelacion rechazada: boleto %d inexistente", id))
		return nil, fmt.Errorf("boleto %d: %w", id, err)
	}
	if err := tx.ReleaseSeat(ctx, boleto.AsientoID); err != nil {
		return nil, err
	}
	if err := tx.DeleteBoleto(ctx, boleto.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	e.recorder.Record(ctx, meta, fmt.Sprintf("boleto %d cancelado, asiento liberado", boleto.ID))
	return boleto, nil
}

// RefundPayment cancels every ticket backed by a payment and then deletes
// the payment itself, all in one transaction.
func (e *Engine) RefundPayment(ctx context.Context, rol string, pagoID uint64, meta audit.Meta) (*model.Pago, []model.Boleto, error) {
	if !canSell(rol) {
		e.recorder.Record(ctx, meta, "reembolso rechazado: rol sin permiso")
		return nil, nil, ErrForbidden
	}
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	pago, err := tx.PagoByID(ctx, pagoID)
	if err != nil {
		e.recorder.Record(ctx, meta, fmt.Sprintf("reembolso rechazado: pago %d inexistente", pagoID))
		return nil, nil, fmt.Errorf("pago %d: %w", pagoID, err)
	}
	boletos, err := tx.BoletosByPago(ctx, pago.ID)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range boletos {
		if err := tx.ReleaseSeat(ctx, b.AsientoID); err != nil {
			return nil, nil, err
		}
		if err := tx.DeleteBoleto(ctx, b.ID); err != nil {
			return nil, nil, err
		}
	}
	if err := tx.DeletePago(ctx, pago.ID); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true
	e.recorder.Record(ctx, meta, fmt.Sprintf("pago %d reembolsado, %d boletos cancelados", pago.ID, len(boletos)))
	return pago, boletos, nil
}

// ReassignSeat moves a ticket to a different seat of the same room. The
// new seat is acquired with a conditional flip and the old one released in
// the same transaction, so the ticket always points at exactly one
// occupied seat; a conflict on the target leaves the old seat untouched.
func (e *Engine) ReassignSeat(ctx context.Context, rol string, boletoID uint64, target SeatRef, meta audit.Meta) (*model.Boleto, *model.Asiento, error) {
	if !canSell(rol) {
		e.recorder.Record(ctx, meta, "reasignacion rechazada: rol sin permiso")
		return nil, nil, ErrForbidden
	}
	if target.Fila == "" || target.Numero == 0 {
		return nil, nil, Validationf("seat position requires row and number")
	}
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	boleto, err := tx.BoletoByID(ctx, boletoID)
	if err != nil {
		e.recorder.Record(ctx, meta, fmt.Sprintf("reasignacion rechazada: boleto %d inexistente", boletoID))
		return nil, nil, fmt.Errorf("boleto %d: %w", boletoID, err)
	}
	seat, err := tx.SeatByPosition(ctx, boleto.SalaID, target.Fila, target.Numero)
	if err != nil {
		e.recorder.Record(ctx, meta, "reasignacion rechazada: asiento "+target.Label()+" inexistente")
		return nil, nil, fmt.Errorf("asiento %s: %w", target.Label(), err)
	}
	if seat.ID == boleto.AsientoID {
		// Already sitting there; nothing to write, deferred rollback
		// discards the read-only transaction.
		return boleto, seat, nil
	}
	ok, err := tx.OccupySeat(ctx, seat.ID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		confErr := &SeatConflictError{Seats: []SeatRef{target}}
		e.recorder.Record(ctx, meta, "reasignacion rechazada: "+confErr.Error())
		return nil, nil, confErr
	}
	if err := tx.ReleaseSeat(ctx, boleto.AsientoID); err != nil {
		return nil, nil, err
	}
	if err := tx.UpdateBoletoSeat(ctx, boleto.ID, seat.ID); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	seat.Estado = model.SeatOccupied
	boleto.AsientoID = seat.ID
	e.recorder.Record(ctx, meta, fmt.Sprintf("boleto %d reasignado al asiento %s", boleto.ID, target.Label()))
	return boleto, seat, nil
}
