package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// HorarioRepo provides CRUD operations for showtimes.
type HorarioRepo struct {
	db *sql.DB
}

// NewHorarioRepo returns a new HorarioRepo bound to the given database.
func NewHorarioRepo(db *sql.DB) *HorarioRepo { return &HorarioRepo{db: db} }

// Create inserts a showtime. On success the ID is populated.
func (r *HorarioRepo) Create(ctx context.Context, h *model.Horario) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO horarios (hora_programada, fecha_emision, turno) VALUES (?, ?, ?)`,
		h.HoraProgramada, h.FechaEmision, h.Turno)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a showtime by its id.
func (r *HorarioRepo) GetByID(ctx context.Context, id uint64) (*model.Horario, error) {
	var h model.Horario
	err := r.db.QueryRowContext(ctx,
		`SELECT id_horario, hora_programada, fecha_emision, turno FROM horarios WHERE id_horario = ?`,
		id).Scan(&h.ID, &h.HoraProgramada, &h.FechaEmision, &h.Turno)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHorarioNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all showtimes ordered by id.
func (r *HorarioRepo) List(ctx context.Context) ([]model.Horario, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_horario, hora_programada, fecha_emision, turno FROM horarios ORDER BY id_horario`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Horario
	for rows.Next() {
		var h model.Horario
		if err := rows.Scan(&h.ID, &h.HoraProgramada, &h.FechaEmision, &h.Turno); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// Update rewrites a showtime row.
func (r *HorarioRepo) Update(ctx context.Context, h *model.Horario) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE horarios SET hora_programada = ?, fecha_emision = ?, turno = ? WHERE id_horario = ?`,
		h.HoraProgramada, h.FechaEmision, h.Turno, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHorarioNotFound
	}
	return nil
}

// Delete removes a showtime by id.
func (r *HorarioRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM horarios WHERE id_horario = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHorarioNotFound
	}
	return nil
}
