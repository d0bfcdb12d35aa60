package reservation

import (
	"context"
	"sync"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/model"
)

// fakeCatalog serves catalog lookups from maps.
type fakeCatalog struct {
	peliculas map[uint64]model.Pelicula
	horarios  map[uint64]model.Horario
	salas     map[uint64]model.Sala
}

func (c *fakeCatalog) PeliculaByID(_ context.Context, id uint64) (*model.Pelicula, error) {
	if p, ok := c.peliculas[id]; ok {
		return &p, nil
	}
	return nil, ErrNotFound
}

func (c *fakeCatalog) HorarioByID(_ context.Context, id uint64) (*model.Horario, error) {
	if h, ok := c.horarios[id]; ok {
		return &h, nil
	}
	return nil, ErrNotFound
}

func (c *fakeCatalog) SalaByID(_ context.Context, id uint64) (*model.Sala, error) {
	if s, ok := c.salas[id]; ok {
		return &s, nil
	}
	return nil, ErrNotFound
}

// fakeStore keeps all rows in memory. Begin snapshots the state and
// Rollback restores it, so the engine's all-or-nothing behaviour is
// observable from the outside.
type fakeStore struct {
	mu         sync.Mutex
	seats      map[uint64]model.Asiento
	pagos      map[uint64]model.Pago
	boletos    map[uint64]model.Boleto
	nextPago   uint64
	nextBoleto uint64

	// failOccupy forces OccupySeat to report the seat as taken even when
	// the preceding read saw it available, simulating a lost race.
	failOccupy map[uint64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seats:      map[uint64]model.Asiento{},
		pagos:      map[uint64]model.Pago{},
		boletos:    map[uint64]model.Boleto{},
		failOccupy: map[uint64]bool{},
	}
}

func (s *fakeStore) addSeat(a model.Asiento) { s.seats[a.ID] = a }

func (s *fakeStore) snapshot() (map[uint64]model.Asiento, map[uint64]model.Pago, map[uint64]model.Boleto) {
	seats := make(map[uint64]model.Asiento, len(s.seats))
	for k, v := range s.seats {
		seats[k] = v
	}
	pagos := make(map[uint64]model.Pago, len(s.pagos))
	for k, v := range s.pagos {
		pagos[k] = v
	}
	boletos := make(map[uint64]model.Boleto, len(s.boletos))
	for k, v := range s.boletos {
		boletos[k] = v
	}
	return seats, pagos, boletos
}

func (s *fakeStore) Begin(context.Context) (Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats, pagos, boletos := s.snapshot()
	return &fakeTx{store: s, snapSeats: seats, snapPagos: pagos, snapBoletos: boletos}, nil
}

type fakeTx struct {
	store       *fakeStore
	snapSeats   map[uint64]model.Asiento
	snapPagos   map[uint64]model.Pago
	snapBoletos map[uint64]model.Boleto
	done        bool
}

func (t *fakeTx) Commit() error {
	t.done = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.seats = t.snapSeats
	t.store.pagos = t.snapPagos
	t.store.boletos = t.snapBoletos
	return nil
}

func (t *fakeTx) SeatByPosition(_ context.Context, salaID uint64, fila string, numero uint32) (*model.Asiento, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, a := range t.store.seats {
		if a.SalaID == salaID && a.Fila == fila && a.Numero == numero {
			seat := a
			return &seat, nil
		}
	}
	return nil, ErrNotFound
}

func (t *fakeTx) OccupySeat(_ context.Context, id uint64) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	a, ok := t.store.seats[id]
	if !ok {
		return false, nil
	}
	if t.store.failOccupy[id] || a.Estado != model.SeatAvailable {
		return false, nil
	}
	a.Estado = model.SeatOccupied
	t.store.seats[id] = a
	return true, nil
}

func (t *fakeTx) ReleaseSeat(_ context.Context, id uint64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if a, ok := t.store.seats[id]; ok {
		a.Estado = model.SeatAvailable
		t.store.seats[id] = a
	}
	return nil
}

func (t *fakeTx) InsertPago(_ context.Context, p *model.Pago) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.nextPago++
	p.ID = t.store.nextPago
	t.store.pagos[p.ID] = *p
	return nil
}

func (t *fakeTx) PagoByID(_ context.Context, id uint64) (*model.Pago, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if p, ok := t.store.pagos[id]; ok {
		return &p, nil
	}
	return nil, ErrNotFound
}

func (t *fakeTx) DeletePago(_ context.Context, id uint64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.pagos[id]; !ok {
		return ErrNotFound
	}
	delete(t.store.pagos, id)
	return nil
}

func (t *fakeTx) InsertBoletos(_ context.Context, boletos []*model.Boleto) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, b := range boletos {
		t.store.nextBoleto++
		b.ID = t.store.nextBoleto
		t.store.boletos[b.ID] = *b
	}
	return nil
}

func (t *fakeTx) BoletoByID(_ context.Context, id uint64) (*model.Boleto, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if b, ok := t.store.boletos[id]; ok {
		return &b, nil
	}
	return nil, ErrNotFound
}

func (t *fakeTx) BoletosByPago(_ context.Context, pagoID uint64) ([]model.Boleto, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var result []model.Boleto
	for _, b := range t.store.boletos {
		if b.PagoID == pagoID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (t *fakeTx) UpdateBoletoSeat(_ context.Context, boletoID, asientoID uint64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	b, ok := t.store.boletos[boletoID]
	if !ok {
		return ErrNotFound
	}
	b.AsientoID = asientoID
	t.store.boletos[boletoID] = b
	return nil
}

func (t *fakeTx) DeleteBoleto(_ context.Context, id uint64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.boletos[id]; !ok {
		return ErrNotFound
	}
	delete(t.store.boletos, id)
	return nil
}

// recordingAudit captures every audit action for assertions.
type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAudit) Record(_ context.Context, _ audit.Meta, accion string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, accion)
}
