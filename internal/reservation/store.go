package reservation

import (
	"context"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// Catalog resolves the read-only references a reservation needs. Missing
// entities are reported as ErrNotFound.
type Catalog interface {
	PeliculaByID(ctx context.Context, id uint64) (*model.Pelicula, error)
	HorarioByID(ctx context.Context, id uint64) (*model.Horario, error)
	SalaByID(ctx context.Context, id uint64) (*model.Sala, error)
}

// Store opens the transactions within which all seat, ticket and payment
// writes happen. The engine never touches storage outside a Tx.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit of reservation work. Implementations back it with
// a database transaction; every method either takes effect at Commit or
// not at all after Rollback. Absent rows are reported as ErrNotFound.
type Tx interface {
	Commit() error
	Rollback() error

	// SeatByPosition locks and returns the seat at (sala, fila, numero).
	SeatByPosition(ctx context.Context, salaID uint64, fila string, numero uint32) (*model.Asiento, error)
	// OccupySeat flips a seat disponible→ocupado, reporting false when the
	// seat was not available.
	OccupySeat(ctx context.Context, id uint64) (bool, error)
	// ReleaseSeat flips a seat back to disponible.
	ReleaseSeat(ctx context.Context, id uint64) error

	InsertPago(ctx context.Context, p *model.Pago) error
	PagoByID(ctx context.Context, id uint64) (*model.Pago, error)
	DeletePago(ctx context.Context, id uint64) error

	InsertBoletos(ctx context.Context, boletos []*model.Boleto) error
	BoletoByID(ctx context.Context, id uint64) (*model.Boleto, error)
	BoletosByPago(ctx context.Context, pagoID uint64) ([]model.Boleto, error)
	UpdateBoletoSeat(ctx context.Context, boletoID, asientoID uint64) error
	DeleteBoleto(ctx context.Context, id uint64) error
}
