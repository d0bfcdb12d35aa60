package reservation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
	"github.com/cinelatam/taquilla-api/internal/repository"
)

// SQLCatalog adapts the catalog repositories to the Catalog interface,
// mapping repository sentinels to this package's ErrNotFound.
type SQLCatalog struct {
	Peliculas *repository.PeliculaRepo
	Horarios  *repository.HorarioRepo
	Salas     *repository.SalaRepo
}

// PeliculaByID implements Catalog.
func (c *SQLCatalog) PeliculaByID(ctx context.Context, id uint64) (*model.Pelicula, error) {
	p, err := c.Peliculas.GetByID(ctx, id)
	return p, mapStorageErr(err)
}

// HorarioByID implements Catalog.
func (c *SQLCatalog) HorarioByID(ctx context.Context, id uint64) (*model.Horario, error) {
	h, err := c.Horarios.GetByID(ctx, id)
	return h, mapStorageErr(err)
}

// SalaByID implements Catalog.
func (c *SQLCatalog) SalaByID(ctx context.Context, id uint64) (*model.Sala, error) {
	s, err := c.Salas.GetByID(ctx, id)
	return s, mapStorageErr(err)
}

// SQLStore backs the engine with MySQL transactions.
type SQLStore struct {
	DB       *sql.DB
	Asientos *repository.AsientoRepo
	Pagos    *repository.PagoRepo
	Boletos  *repository.BoletoRepo
}

// Begin opens a database transaction wrapped as a Tx.
func (s *SQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx, store: s}, nil
}

type sqlTx struct {
	tx    *sql.Tx
	store *SQLStore
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }

func (t *sqlTx) SeatByPosition(ctx context.Context, salaID uint64, fila string, numero uint32) (*model.Asiento, error) {
	a, err := t.store.Asientos.GetByPositionTx(ctx, t.tx, salaID, fila, numero)
	return a, mapStorageErr(err)
}

func (t *sqlTx) OccupySeat(ctx context.Context, id uint64) (bool, error) {
	return t.store.Asientos.OccupyTx(ctx, t.tx, id)
}

func (t *sqlTx) ReleaseSeat(ctx context.Context, id uint64) error {
	return t.store.Asientos.ReleaseTx(ctx, t.tx, id)
}

func (t *sqlTx) InsertPago(ctx context.Context, p *model.Pago) error {
	return t.store.Pagos.CreateTx(ctx, t.tx, p)
}

func (t *sqlTx) PagoByID(ctx context.Context, id uint64) (*model.Pago, error) {
	p, err := t.store.Pagos.GetByIDTx(ctx, t.tx, id)
	return p, mapStorageErr(err)
}

func (t *sqlTx) DeletePago(ctx context.Context, id uint64) error {
	return mapStorageErr(t.store.Pagos.DeleteTx(ctx, t.tx, id))
}

func (t *sqlTx) InsertBoletos(ctx context.Context, boletos []*model.Boleto) error {
	return t.store.Boletos.CreateBulkTx(ctx, t.tx, boletos)
}

func (t *sqlTx) BoletoByID(ctx context.Context, id uint64) (*model.Boleto, error) {
	b, err := t.store.Boletos.GetByIDTx(ctx, t.tx, id)
	return b, mapStorageErr(err)
}

func (t *sqlTx) BoletosByPago(ctx context.Context, pagoID uint64) ([]model.Boleto, error) {
	return t.store.Boletos.ListByPagoTx(ctx, t.tx, pagoID)
}

func (t *sqlTx) UpdateBoletoSeat(ctx context.Context, boletoID, asientoID uint64) error {
	return mapStorageErr(t.store.Boletos.UpdateSeatTx(ctx, t.tx, boletoID, asientoID))
}

func (t *sqlTx) DeleteBoleto(ctx context.Context, id uint64) error {
	return mapStorageErr(t.store.Boletos.DeleteTx(ctx, t.tx, id))
}

func mapStorageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrPeliculaNotFound),
		errors.Is(err, repository.ErrHorarioNotFound),
		errors.Is(err, repository.ErrSalaNotFound),
		errors.Is(err, repository.ErrAsientoNotFound),
		errors.Is(err, repository.ErrPagoNotFound),
		errors.Is(err, repository.ErrBoletoNotFound):
		return ErrNotFound
	}
	return err
}
