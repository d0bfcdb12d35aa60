package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// AsientoRepo provides methods to work with seats in the database. The
// state transitions (disponible <-> ocupado) are implemented as conditional
// updates so two concurrent reservations of the same seat can never both
// succeed.
type AsientoRepo struct {
	db *sql.DB
}

// NewAsientoRepo constructs an AsientoRepo with the given DB handle.
func NewAsientoRepo(db *sql.DB) *AsientoRepo {
	return &AsientoRepo{db: db}
}

// CreateBulkTx inserts multiple seats in a single statement inside tx.
// Used when a room is created or its layout is regenerated.
func (r *AsientoRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, seats []model.Asiento) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO asientos (id_sala, fila_asiento, numero_asiento, estado_asiento) VALUES `
	args := make([]interface{}, 0, len(seats)*4)
	for i, a := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, a.SalaID, a.Fila, a.Numero, a.Estado)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a seat by its id.
func (r *AsientoRepo) GetByID(ctx context.Context, id uint64) (*model.Asiento, error) {
	return scanAsiento(r.db.QueryRowContext(ctx,
		`SELECT id_asiento, id_sala, fila_asiento, numero_asiento, estado_asiento
		 FROM asientos WHERE id_asiento = ?`, id))
}

// GetByIDTx is GetByID within a transaction.
func (r *AsientoRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Asiento, error) {
	return scanAsiento(tx.QueryRowContext(ctx,
		`SELECT id_asiento, id_sala, fila_asiento, numero_asiento, estado_asiento
		 FROM asientos WHERE id_asiento = ?`, id))
}

// GetByPositionTx retrieves the seat at (sala, fila, numero) within a
// transaction, locking the row so the availability read and the later flip
// belong to the same atomic unit.
func (r *AsientoRepo) GetByPositionTx(ctx context.Context, tx *sql.Tx, salaID uint64, fila string, numero uint32) (*model.Asiento, error) {
	return scanAsiento(tx.QueryRowContext(ctx,
		`SELECT id_asiento, id_sala, fila_asiento, numero_asiento, estado_asiento
		 FROM asientos WHERE id_sala = ? AND fila_asiento = ? AND numero_asiento = ?
		 FOR UPDATE`, salaID, fila, numero))
}

func scanAsiento(row *sql.Row) (*model.Asiento, error) {
	var a model.Asiento
	err := row.Scan(&a.ID, &a.SalaID, &a.Fila, &a.Numero, &a.Estado)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAsientoNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Search returns seats matching the provided criteria. Zero-valued
// criteria are ignored.
func (r *AsientoRepo) Search(ctx context.Context, id, salaID uint64, fila, estado string) ([]model.Asiento, error) {
	query := `SELECT id_asiento, id_sala, fila_asiento, numero_asiento, estado_asiento FROM asientos WHERE 1=1`
	args := make([]interface{}, 0, 4)
	if id != 0 {
		query += ` AND id_asiento = ?`
		args = append(args, id)
	}
	if salaID != 0 {
		query += ` AND id_sala = ?`
		args = append(args, salaID)
	}
	if fila != "" {
		query += ` AND fila_asiento = ?`
		args = append(args, fila)
	}
	if estado != "" {
		query += ` AND estado_asiento = ?`
		args = append(args, estado)
	}
	query += ` ORDER BY fila_asiento, numero_asiento`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Asiento
	for rows.Next() {
		var a model.Asiento
		if err := rows.Scan(&a.ID, &a.SalaID, &a.Fila, &a.Numero, &a.Estado); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// OccupyTx flips a seat from disponible to ocupado. It reports false when
// the seat was not available, which callers must treat as a conflict and
// roll back. The WHERE clause on the current state is what makes
// check-and-flip atomic.
func (r *AsientoRepo) OccupyTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE asientos SET estado_asiento = ? WHERE id_asiento = ? AND estado_asiento = ?`,
		model.SeatOccupied, id, model.SeatAvailable)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ReleaseTx flips a seat back to disponible. Releasing an already-free
// seat is a no-op, which keeps cancellation idempotent at the seat level.
func (r *AsientoRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE asientos SET estado_asiento = ? WHERE id_asiento = ?`,
		model.SeatAvailable, id)
	return err
}

// CountOccupied returns how many seats of a room are currently occupied.
// The room layout guard evaluates this against live state on every request.
func (r *AsientoRepo) CountOccupied(ctx context.Context, salaID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM asientos WHERE id_sala = ? AND estado_asiento = ?`,
		salaID, model.SeatOccupied).Scan(&n)
	return n, err
}

// CountOccupiedTx is CountOccupied within a transaction.
func (r *AsientoRepo) CountOccupiedTx(ctx context.Context, tx *sql.Tx, salaID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM asientos WHERE id_sala = ? AND estado_asiento = ?`,
		salaID, model.SeatOccupied).Scan(&n)
	return n, err
}

// DeleteBySalaTx removes all seat rows of a room within tx. Used when a
// room's layout is redefined or the room itself is deleted; callers must
// have verified that no seat is occupied.
func (r *AsientoRepo) DeleteBySalaTx(ctx context.Context, tx *sql.Tx, salaID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM asientos WHERE id_sala = ?`, salaID)
	return err
}

// GetBySala retrieves all seats of a room ordered by row then number.
func (r *AsientoRepo) GetBySala(ctx context.Context, salaID uint64) ([]model.Asiento, error) {
	return r.Search(ctx, 0, salaID, "", "")
}
