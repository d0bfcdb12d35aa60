package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
)

// testWorld wires an engine over a 2x3 room (rows A and B, seats 1..3)
// showing one movie priced at 50.
type testWorld struct {
	engine  *Engine
	store   *fakeStore
	catalog *fakeCatalog
	audit   *recordingAudit
}

func newTestWorld() *testWorld {
	catalog := &fakeCatalog{
		peliculas: map[uint64]model.Pelicula{
			1: {ID: 1, Nombre: "El Laberinto", Duracion: 118, Clasificacion: "B", Precio: 50, HorarioID: 7},
		},
		horarios: map[uint64]model.Horario{
			7: {ID: 7, HoraProgramada: "20:30:00", FechaEmision: "2026-09-01", Turno: model.TurnoNocturno},
		},
		salas: map[uint64]model.Sala{
			3: {ID: 3, Nombre: "Sala 3", CantidadAsientos: 6, CantidadFilas: 2, AsientosPorFila: 3},
		},
	}
	store := newFakeStore()
	id := uint64(0)
	for _, fila := range []string{"A", "B"} {
		for n := uint32(1); n <= 3; n++ {
			id++
			store.addSeat(model.Asiento{ID: id, SalaID: 3, Fila: fila, Numero: n, Estado: model.SeatAvailable})
		}
	}
	rec := &recordingAudit{}
	return &testWorld{
		engine:  NewEngine(catalog, store, rec),
		store:   store,
		catalog: catalog,
		audit:   rec,
	}
}

func reserveInput(seats ...SeatRef) ReserveInput {
	return ReserveInput{
		UserID:     42,
		Rol:        model.RolCliente,
		PeliculaID: 1,
		SalaID:     3,
		Seats:      seats,
		Metodo:     model.PagoTarjeta,
	}
}

func TestReserveIssuesOneTicketPerSeat(t *testing.T) {
	w := newTestWorld()

	res, err := w.engine.Reserve(context.Background(),
		reserveInput(SeatRef{"A", 1}, SeatRef{"A", 2}, SeatRef{"B", 3}))
	require.NoError(t, err)

	assert.Equal(t, uint32(150), res.Pago.Cantidad, "amount is price times seat count")
	assert.Equal(t, uint64(42), res.Pago.UsuarioID)
	_, parseErr := uuid.Parse(res.Pago.Folio)
	assert.NoError(t, parseErr, "folio is a uuid")

	require.Len(t, res.Boletos, 3)
	for _, b := range res.Boletos {
		assert.Equal(t, res.Pago.ID, b.PagoID, "every ticket points at the single payment")
		assert.Equal(t, uint64(1), b.PeliculaID)
		assert.Equal(t, uint64(7), b.HorarioID)
		assert.Equal(t, uint64(3), b.SalaID)
	}
	for _, a := range res.Asientos {
		assert.Equal(t, model.SeatOccupied, w.store.seats[a.ID].Estado)
	}
	// The three unrequested seats stay available.
	free := 0
	for _, a := range w.store.seats {
		if a.Estado == model.SeatAvailable {
			free++
		}
	}
	assert.Equal(t, 3, free)
}

func TestReserveConflictListsEveryOccupiedSeat(t *testing.T) {
	w := newTestWorld()
	occupySeat(w.store, "A", 1)
	occupySeat(w.store, "B", 2)

	_, err := w.engine.Reserve(context.Background(),
		reserveInput(SeatRef{"A", 1}, SeatRef{"A", 2}, SeatRef{"B", 2}))

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []SeatRef{{"A", 1}, {"B", 2}}, conflict.Seats)

	// Nothing was written: the available seat in the batch stayed
	// available and no payment or ticket rows exist.
	assert.Equal(t, model.SeatAvailable, seatAt(w.store, "A", 2).Estado)
	assert.Empty(t, w.store.pagos)
	assert.Empty(t, w.store.boletos)
}

func TestReserveLostRaceRollsBackWholeBatch(t *testing.T) {
	w := newTestWorld()
	// The read sees B-1 available but the conditional flip loses.
	w.store.failOccupy[seatAt(w.store, "B", 1).ID] = true

	_, err := w.engine.Reserve(context.Background(),
		reserveInput(SeatRef{"A", 1}, SeatRef{"B", 1}))

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []SeatRef{{"B", 1}}, conflict.Seats)

	assert.Equal(t, model.SeatAvailable, seatAt(w.store, "A", 1).Estado, "first seat released by rollback")
	assert.Empty(t, w.store.pagos)
	assert.Empty(t, w.store.boletos)
}

func TestReserveUnknownReferences(t *testing.T) {
	w := newTestWorld()

	in := reserveInput(SeatRef{"A", 1})
	in.PeliculaID = 99
	_, err := w.engine.Reserve(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotFound)

	in = reserveInput(SeatRef{"A", 1})
	in.SalaID = 99
	_, err = w.engine.Reserve(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = w.engine.Reserve(context.Background(), reserveInput(SeatRef{"Z", 9}))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, w.store.pagos)
}

func TestReserveValidation(t *testing.T) {
	w := newTestWorld()

	cases := []struct {
		name string
		in   ReserveInput
	}{
		{"no seats", reserveInput()},
		{"duplicate seat", reserveInput(SeatRef{"A", 1}, SeatRef{"A", 1})},
		{"missing row", reserveInput(SeatRef{"", 1})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.engine.Reserve(context.Background(), tc.in)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	in := reserveInput(SeatRef{"A", 1})
	in.Metodo = "cheque"
	_, err := w.engine.Reserve(context.Background(), in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReserveForbiddenRole(t *testing.T) {
	w := newTestWorld()

	in := reserveInput(SeatRef{"A", 1})
	in.Rol = model.RolOtro
	_, err := w.engine.Reserve(context.Background(), in)
	assert.ErrorIs(t, err, ErrForbidden)

	in.Rol = ""
	_, err = w.engine.Reserve(context.Background(), in)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReserveAuditsSuccessAndFailure(t *testing.T) {
	w := newTestWorld()

	_, err := w.engine.Reserve(context.Background(), reserveInput(SeatRef{"A", 1}))
	require.NoError(t, err)

	_, err = w.engine.Reserve(context.Background(), reserveInput(SeatRef{"A", 1}))
	require.Error(t, err)

	require.Len(t, w.audit.actions, 2)
	assert.Contains(t, w.audit.actions[0], "reserva creada")
	assert.Contains(t, w.audit.actions[1], "reserva rechazada")
}

func TestCancelTicketReleasesSeatAndKeepsPayment(t *testing.T) {
	w := newTestWorld()
	res, err := w.engine.Reserve(context.Background(),
		reserveInput(SeatRef{"A", 1}, SeatRef{"A", 2}))
	require.NoError(t, err)

	cancelled, err := w.engine.CancelTicket(context.Background(), model.RolCliente, res.Boletos[0].ID, testMeta())
	require.NoError(t, err)
	assert.Equal(t, res.Boletos[0].ID, cancelled.ID)

	_, exists := w.store.boletos[cancelled.ID]
	assert.False(t, exists, "ticket row removed")
	assert.Equal(t, model.SeatAvailable, w.store.seats[cancelled.AsientoID].Estado)

	_, exists = w.store.pagos[res.Pago.ID]
	assert.True(t, exists, "payment survives a single-ticket cancellation")
	_, exists = w.store.boletos[res.Boletos[1].ID]
	assert.True(t, exists, "sibling ticket untouched")
}

func TestCancelUnknownTicket(t *testing.T) {
	w := newTestWorld()
	_, err := w.engine.CancelTicket(context.Background(), model.RolCliente, 404, testMeta())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefundCascadesThroughEveryTicket(t *testing.T) {
	w := newTestWorld()
	res, err := w.engine.Reserve(context.Background(),
		reserveInput(SeatRef{"A", 1}, SeatRef{"B", 2}, SeatRef{"B", 3}))
	require.NoError(t, err)

	pago, boletos, err := w.engine.RefundPayment(context.Background(), model.RolCliente, res.Pago.ID, testMeta())
	require.NoError(t, err)
	assert.Equal(t, res.Pago.ID, pago.ID)
	assert.Len(t, boletos, 3)

	assert.Empty(t, w.store.pagos)
	assert.Empty(t, w.store.boletos)
	for _, a := range w.store.seats {
		assert.Equal(t, model.SeatAvailable, a.Estado)
	}
}

func TestRefundUnknownPayment(t *testing.T) {
	w := newTestWorld()
	_, _, err := w.engine.RefundPayment(context.Background(), model.RolAdmin, 404, testMeta())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReassignSeatMovesTicketAtomically(t *testing.T) {
	w := newTestWorld()
	res, err := w.engine.Reserve(context.Background(), reserveInput(SeatRef{"A", 1}))
	require.NoError(t, err)
	oldSeatID := res.Boletos[0].AsientoID

	boleto, seat, err := w.engine.ReassignSeat(context.Background(), model.RolCliente,
		res.Boletos[0].ID, SeatRef{"B", 2}, testMeta())
	require.NoError(t, err)

	assert.Equal(t, seat.ID, boleto.AsientoID)
	assert.Equal(t, model.SeatOccupied, w.store.seats[seat.ID].Estado)
	assert.Equal(t, model.SeatAvailable, w.store.seats[oldSeatID].Estado)
	assert.Equal(t, seat.ID, w.store.boletos[boleto.ID].AsientoID)
}

func TestReassignSeatConflictLeavesOldSeat(t *testing.T) {
	w := newTestWorld()
	res, err := w.engine.Reserve(context.Background(), reserveInput(SeatRef{"A", 1}))
	require.NoError(t, err)
	occupySeat(w.store, "B", 2)

	_, _, err = w.engine.ReassignSeat(context.Background(), model.RolCliente,
		res.Boletos[0].ID, SeatRef{"B", 2}, testMeta())

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []SeatRef{{"B", 2}}, conflict.Seats)

	assert.Equal(t, model.SeatOccupied, w.store.seats[res.Boletos[0].AsientoID].Estado,
		"old seat still held by the ticket")
	assert.Equal(t, res.Boletos[0].AsientoID, w.store.boletos[res.Boletos[0].ID].AsientoID)
}

func TestReassignSameSeatIsNoOp(t *testing.T) {
	w := newTestWorld()
	res, err := w.engine.Reserve(context.Background(), reserveInput(SeatRef{"A", 1}))
	require.NoError(t, err)

	boleto, seat, err := w.engine.ReassignSeat(context.Background(), model.RolCliente,
		res.Boletos[0].ID, SeatRef{"A", 1}, testMeta())
	require.NoError(t, err)
	assert.Equal(t, res.Boletos[0].AsientoID, boleto.AsientoID)
	assert.Equal(t, model.SeatOccupied, seat.Estado)
}

func TestSeatConflictErrorMessage(t *testing.T) {
	err := &SeatConflictError{Seats: []SeatRef{{"A", 1}, {"B", 12}}}
	assert.Equal(t, "seats not available: A-1, B-12", err.Error())
	assert.False(t, errors.Is(err, ErrNotFound))
}

func testMeta() audit.Meta {
	return audit.Meta{Usuario: "42", Host: "localhost", DireccionIP: "127.0.0.1"}
}

func occupySeat(s *fakeStore, fila string, numero uint32) {
	a := seatAt(s, fila, numero)
	a.Estado = model.SeatOccupied
	s.seats[a.ID] = *a
}

func seatAt(s *fakeStore, fila string, numero uint32) *model.Asiento {
	for _, a := range s.seats {
		if a.Fila == fila && a.Numero == numero {
			seat := a
			return &seat
		}
	}
	return nil
}
