package repository // repository defines data access for rooms

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// SalaRepo provides methods to work with rooms in the database.
type SalaRepo struct {
	db *sql.DB
}

// NewSalaRepo constructs a SalaRepo with the given DB handle.
func NewSalaRepo(db *sql.DB) *SalaRepo {
	return &SalaRepo{db: db}
}

// DB exposes the underlying handle so callers can open transactions that
// span rooms and seats.
func (r *SalaRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a room within a transaction, so callers can create the
// room and its seat grid as one atomic unit. On success the room's ID is
// populated. A duplicate name maps to ErrConflict.
func (r *SalaRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Sala) error {
	const q = `INSERT INTO salas (nombre_sala, cantidad_asientos, cantidad_filas, asientos_por_fila)
	           VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.Nombre, s.CantidadAsientos, s.CantidadFilas, s.AsientosPorFila)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a room by its id.
func (r *SalaRepo) GetByID(ctx context.Context, id uint64) (*model.Sala, error) {
	const q = `SELECT id_sala, nombre_sala, cantidad_asientos, cantidad_filas, asientos_por_fila
	           FROM salas WHERE id_sala = ?`
	var s model.Sala
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.Nombre, &s.CantidadAsientos, &s.CantidadFilas, &s.AsientosPorFila)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSalaNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByNombre retrieves a room by its unique name.
func (r *SalaRepo) GetByNombre(ctx context.Context, nombre string) (*model.Sala, error) {
	const q = `SELECT id_sala, nombre_sala, cantidad_asientos, cantidad_filas, asientos_por_fila
	           FROM salas WHERE nombre_sala = ?`
	var s model.Sala
	err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(nombre)).
		Scan(&s.ID, &s.Nombre, &s.CantidadAsientos, &s.CantidadFilas, &s.AsientosPorFila)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSalaNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Search returns rooms matching the provided criteria. Zero-valued criteria
// are ignored; nombre matches as a substring.
func (r *SalaRepo) Search(ctx context.Context, id uint64, nombre string, cantidad uint32) ([]model.Sala, error) {
	query := `SELECT id_sala, nombre_sala, cantidad_asientos, cantidad_filas, asientos_por_fila FROM salas WHERE 1=1`
	args := make([]interface{}, 0, 3)
	if id != 0 {
		query += ` AND id_sala = ?`
		args = append(args, id)
	}
	if nombre != "" {
		query += ` AND nombre_sala LIKE ?`
		args = append(args, "%"+nombre+"%")
	}
	if cantidad != 0 {
		query += ` AND cantidad_asientos = ?`
		args = append(args, cantidad)
	}
	query += ` ORDER BY id_sala`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Sala
	for rows.Next() {
		var s model.Sala
		if err := rows.Scan(&s.ID, &s.Nombre, &s.CantidadAsientos, &s.CantidadFilas, &s.AsientosPorFila); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateTx updates a room's attributes within a transaction. The caller is
// responsible for the occupied-seat guard; this method only writes.
func (r *SalaRepo) UpdateTx(ctx context.Context, tx *sql.Tx, s *model.Sala) error {
	const q = `UPDATE salas
	           SET nombre_sala = ?, cantidad_asientos = ?, cantidad_filas = ?, asientos_por_fila = ?
	           WHERE id_sala = ?`
	res, err := tx.ExecContext(ctx, q, s.Nombre, s.CantidadAsientos, s.CantidadFilas, s.AsientosPorFila, s.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSalaNotFound
	}
	return nil
}

// DeleteTx removes a room within a transaction. Seats must already have
// been removed by the caller.
func (r *SalaRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM salas WHERE id_sala = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSalaNotFound
	}
	return nil
}

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
