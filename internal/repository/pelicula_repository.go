package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// PeliculaRepo provides CRUD operations for the movie catalog.
type PeliculaRepo struct {
	db *sql.DB
}

// NewPeliculaRepo returns a new PeliculaRepo bound to the given database.
func NewPeliculaRepo(db *sql.DB) *PeliculaRepo { return &PeliculaRepo{db: db} }

const peliculaCols = `id_pelicula, nombre_pelicula, director_pelicula, duracion_pelicula,
	actores_pelicula, clasificacion_pelicula, descripcion_pelicula, precio_boleto,
	imagen_pelicula, id_horario`

// Create inserts a movie. On success the movie's ID is populated.
func (r *PeliculaRepo) Create(ctx context.Context, p *model.Pelicula) error {
	const q = `INSERT INTO peliculas (nombre_pelicula, director_pelicula, duracion_pelicula,
	           actores_pelicula, clasificacion_pelicula, descripcion_pelicula, precio_boleto,
	           imagen_pelicula, id_horario)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Nombre, p.Director, p.Duracion, p.Actores,
		p.Clasificacion, p.Descripcion, p.Precio, nullStr(p.Imagen), p.HorarioID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID retrieves a movie by its id.
func (r *PeliculaRepo) GetByID(ctx context.Context, id uint64) (*model.Pelicula, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+peliculaCols+` FROM peliculas WHERE id_pelicula = ?`, id)
	return scanPelicula(row)
}

func scanPelicula(row *sql.Row) (*model.Pelicula, error) {
	var p model.Pelicula
	var imagen sql.NullString
	err := row.Scan(&p.ID, &p.Nombre, &p.Director, &p.Duracion, &p.Actores,
		&p.Clasificacion, &p.Descripcion, &p.Precio, &imagen, &p.HorarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPeliculaNotFound
		}
		return nil, err
	}
	if imagen.Valid {
		p.Imagen = &imagen.String
	}
	return &p, nil
}

// List returns the full movie catalog ordered by id.
func (r *PeliculaRepo) List(ctx context.Context) ([]model.Pelicula, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+peliculaCols+` FROM peliculas ORDER BY id_pelicula`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Pelicula
	for rows.Next() {
		var p model.Pelicula
		var imagen sql.NullString
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Director, &p.Duracion, &p.Actores,
			&p.Clasificacion, &p.Descripcion, &p.Precio, &imagen, &p.HorarioID); err != nil {
			return nil, err
		}
		if imagen.Valid {
			p.Imagen = &imagen.String
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Update rewrites a movie row.
func (r *PeliculaRepo) Update(ctx context.Context, p *model.Pelicula) error {
	const q = `UPDATE peliculas SET nombre_pelicula = ?, director_pelicula = ?, duracion_pelicula = ?,
	           actores_pelicula = ?, clasificacion_pelicula = ?, descripcion_pelicula = ?,
	           precio_boleto = ?, imagen_pelicula = ?, id_horario = ?
	           WHERE id_pelicula = ?`
	res, err := r.db.ExecContext(ctx, q, p.Nombre, p.Director, p.Duracion, p.Actores,
		p.Clasificacion, p.Descripcion, p.Precio, nullStr(p.Imagen), p.HorarioID, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPeliculaNotFound
	}
	return nil
}

// Delete removes a movie by id.
func (r *PeliculaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM peliculas WHERE id_pelicula = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPeliculaNotFound
	}
	return nil
}

func nullStr(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
