package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// CarteleraRepo provides CRUD operations for program listings. A listing
// associates a movie, a showtime and a room with a day of the week; it is
// browse-only data and never participates in reservation correctness.
type CarteleraRepo struct {
	db *sql.DB
}

// NewCarteleraRepo returns a new CarteleraRepo bound to the given database.
func NewCarteleraRepo(db *sql.DB) *CarteleraRepo { return &CarteleraRepo{db: db} }

// CarteleraDetail is a listing joined with its movie, showtime and room
// for catalog display.
type CarteleraDetail struct {
	ID            uint64 `json:"idCartelera"`
	DiaSemana     string `json:"diaSemana"`
	PeliculaID    uint64 `json:"idPelicula"`
	Pelicula      string `json:"nombrePelicula"`
	Clasificacion string `json:"clasificacionPelicula"`
	Precio        uint32 `json:"precioBoleto"`
	HorarioID     uint64 `json:"idHorario"`
	Hora          string `json:"horaProgramada"`
	Turno         string `json:"turno"`
	SalaID        uint64 `json:"idSala"`
	Sala          string `json:"nombreSala"`
}

// Create inserts a listing. Duplicate (pelicula, horario, sala, dia)
// combinations map to ErrConflict.
func (r *CarteleraRepo) Create(ctx context.Context, c *model.Cartelera) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cartelera (id_pelicula, id_horario, id_sala, dia_semana) VALUES (?, ?, ?, ?)`,
		c.PeliculaID, c.HorarioID, c.SalaID, c.DiaSemana)
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
	c.ID = uint64(id)
	return nil
}

// List returns listings joined with movie, showtime and room names,
// optionally filtered by day of week.
func (r *CarteleraRepo) List(ctx context.Context, dia string) ([]CarteleraDetail, error) {
	query := `SELECT c.id_cartelera, c.dia_semana,
	                 p.id_pelicula, p.nombre_pelicula, p.clasificacion_pelicula, p.precio_boleto,
	                 h.id_horario, h.hora_programada, h.turno,
	                 s.id_sala, s.nombre_sala
	          FROM cartelera c
	          JOIN peliculas p ON p.id_pelicula = c.id_pelicula
	          JOIN horarios h ON h.id_horario = c.id_horario
	          JOIN salas s ON s.id_sala = c.id_sala`
	args := []interface{}{}
	if dia != "" {
		query += ` WHERE c.dia_semana = ?`
		args = append(args, strings.ToLower(strings.TrimSpace(dia)))
	}
	query += ` ORDER BY c.dia_semana, h.hora_programada`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CarteleraDetail
	for rows.Next() {
		var d CarteleraDetail
		if err := rows.Scan(&d.ID, &d.DiaSemana, &d.PeliculaID, &d.Pelicula, &d.Clasificacion,
			&d.Precio, &d.HorarioID, &d.Hora, &d.Turno, &d.SalaID, &d.Sala); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// GetByID retrieves a raw listing row.
func (r *CarteleraRepo) GetByID(ctx context.Context, id uint64) (*model.Cartelera, error) {
	var c model.Cartelera
	err := r.db.QueryRowContext(ctx,
		`SELECT id_cartelera, id_pelicula, id_horario, id_sala, dia_semana FROM cartelera WHERE id_cartelera = ?`,
		id).Scan(&c.ID, &c.PeliculaID, &c.HorarioID, &c.SalaID, &c.DiaSemana)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCarteleraNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update rewrites a listing row.
func (r *CarteleraRepo) Update(ctx context.Context, c *model.Cartelera) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cartelera SET id_pelicula = ?, id_horario = ?, id_sala = ?, dia_semana = ? WHERE id_cartelera = ?`,
		c.PeliculaID, c.HorarioID, c.SalaID, c.DiaSemana, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCarteleraNotFound
	}
	return nil
}

// Delete removes a listing by id.
func (r *CarteleraRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cartelera WHERE id_cartelera = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCarteleraNotFound
	}
	return nil
}

// DiasSemana lists the accepted day names, Monday first.
var DiasSemana = []string{"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo"}

// ValidDia reports whether dia names a day of the week.
func ValidDia(dia string) bool {
	dia = strings.ToLower(strings.TrimSpace(dia))
	for _, d := range DiasSemana {
		if d == dia {
			return true
		}
	}
	return false
}

// Hoy returns today's day-of-week name, the default cartelera filter.
func Hoy() string {
	return DiasSemana[(int(time.Now().Weekday())+6)%7]
}
