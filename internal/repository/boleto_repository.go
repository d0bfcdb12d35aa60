package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// BoletoRepo provides persistence for tickets. Creation and destruction
// always happen inside the reservation engine's transactions so the
// linked seat state can never drift from the ticket rows.
type BoletoRepo struct {
	db *sql.DB
}

// NewBoletoRepo returns a new BoletoRepo bound to the given database.
func NewBoletoRepo(db *sql.DB) *BoletoRepo { return &BoletoRepo{db: db} }

const boletoCols = `id_boleto, id_pelicula, id_horario, id_sala, id_compra, id_asiento_reservado, fecha_reserva`

// CreateBulkTx inserts the tickets of one purchase in a single statement
// within tx and populates the generated IDs in order.
func (r *BoletoRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, boletos []*model.Boleto) error {
	if len(boletos) == 0 {
		return nil
	}
	query := `INSERT INTO boletos (id_pelicula, id_horario, id_sala, id_compra, id_asiento_reservado, fecha_reserva) VALUES `
	args := make([]interface{}, 0, len(boletos)*6)
	for i, b := range boletos {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, b.PeliculaID, b.HorarioID, b.SalaID, b.PagoID, b.AsientoID, b.FechaReserva)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	// MySQL returns the first ID of a multi-row insert; subsequent rows get
	// consecutive IDs under auto_increment locking.
	first, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, b := range boletos {
		b.ID = uint64(first) + uint64(i)
	}
	return nil
}

// GetByID retrieves a ticket by its id.
func (r *BoletoRepo) GetByID(ctx context.Context, id uint64) (*model.Boleto, error) {
	return scanBoleto(r.db.QueryRowContext(ctx,
		`SELECT `+boletoCols+` FROM boletos WHERE id_boleto = ?`, id))
}

// GetByIDTx is GetByID within a transaction, locking the row.
func (r *BoletoRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Boleto, error) {
	return scanBoleto(tx.QueryRowContext(ctx,
		`SELECT `+boletoCols+` FROM boletos WHERE id_boleto = ? FOR UPDATE`, id))
}

func scanBoleto(row *sql.Row) (*model.Boleto, error) {
	var b model.Boleto
	err := row.Scan(&b.ID, &b.PeliculaID, &b.HorarioID, &b.SalaID, &b.PagoID, &b.AsientoID, &b.FechaReserva)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoletoNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByPagoTx returns all tickets backed by a payment, within tx. Used by
// the refund cascade.
func (r *BoletoRepo) ListByPagoTx(ctx context.Context, tx *sql.Tx, pagoID uint64) ([]model.Boleto, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+boletoCols+` FROM boletos WHERE id_compra = ? FOR UPDATE`, pagoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Boleto
	for rows.Next() {
		var b model.Boleto
		if err := rows.Scan(&b.ID, &b.PeliculaID, &b.HorarioID, &b.SalaID, &b.PagoID, &b.AsientoID, &b.FechaReserva); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// DeleteTx removes a ticket row within a transaction.
func (r *BoletoRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM boletos WHERE id_boleto = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBoletoNotFound
	}
	return nil
}

// UpdateSeatTx points a ticket at a different seat within a transaction.
// The engine flips both seats' states in the same tx.
func (r *BoletoRepo) UpdateSeatTx(ctx context.Context, tx *sql.Tx, boletoID, asientoID uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE boletos SET id_asiento_reservado = ? WHERE id_boleto = ?`, asientoID, boletoID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBoletoNotFound
	}
	return nil
}

// Search returns tickets matching the provided criteria. Zero-valued
// criteria are ignored.
func (r *BoletoRepo) Search(ctx context.Context, id, peliculaID, salaID, asientoID, pagoID uint64) ([]model.Boleto, error) {
	query := `SELECT ` + boletoCols + ` FROM boletos WHERE 1=1`
	args := make([]interface{}, 0, 5)
	if id != 0 {
		query += ` AND id_boleto = ?`
		args = append(args, id)
	}
	if peliculaID != 0 {
		query += ` AND id_pelicula = ?`
		args = append(args, peliculaID)
	}
	if salaID != 0 {
		query += ` AND id_sala = ?`
		args = append(args, salaID)
	}
	if asientoID != 0 {
		query += ` AND id_asiento_reservado = ?`
		args = append(args, asientoID)
	}
	if pagoID != 0 {
		query += ` AND id_compra = ?`
		args = append(args, pagoID)
	}
	query += ` ORDER BY id_boleto`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Boleto
	for rows.Next() {
		var b model.Boleto
		if err := rows.Scan(&b.ID, &b.PeliculaID, &b.HorarioID, &b.SalaID, &b.PagoID, &b.AsientoID, &b.FechaReserva); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
