package repository

import (
	"context"
	"database/sql"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// LogRepo appends audit records. The table is write-only from the core's
// perspective; reads exist solely for the admin query endpoint.
type LogRepo struct {
	db *sql.DB
}

// NewLogRepo returns a LogRepo bound to db.
func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{db: db} }

// Append inserts one audit record.
func (r *LogRepo) Append(ctx context.Context, e *model.LogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO logs (usuario, accion, fecha_hora, host, navegador, sistema_operativo, tipo_dispositivo, direccion_ip)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Usuario, e.Accion, e.FechaHora, e.Host, e.Navegador, e.SistemaOperativo, e.TipoDispositivo, e.DireccionIP)
	return err
}

// List returns audit records, newest first, optionally filtered by actor
// and capped at limit rows (0 means a server-side default of 200).
func (r *LogRepo) List(ctx context.Context, usuario string, limit int) ([]model.LogEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	query := `SELECT id_log, usuario, accion, fecha_hora, host, navegador, sistema_operativo, tipo_dispositivo, direccion_ip
	          FROM logs`
	args := []interface{}{}
	if usuario != "" {
		query += ` WHERE usuario = ?`
		args = append(args, usuario)
	}
	query += ` ORDER BY fecha_hora DESC LIMIT ?`
	args = append(args, limit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		if err := rows.Scan(&e.ID, &e.Usuario, &e.Accion, &e.FechaHora, &e.Host, &e.Navegador,
			&e.SistemaOperativo, &e.TipoDispositivo, &e.DireccionIP); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
