package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// PagoRepo provides persistence for payments. Payments are created by the
// reservation engine inside the reservation transaction; deleting one is a
// refund and must cascade through its tickets, which the engine drives.
type PagoRepo struct {
	db *sql.DB
}

// NewPagoRepo returns a new PagoRepo bound to the given database.
func NewPagoRepo(db *sql.DB) *PagoRepo { return &PagoRepo{db: db} }

// CreateTx inserts a payment within a transaction and populates its ID and
// creation timestamp.
func (r *PagoRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Pago) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO pagos (id_usuario, cantidad_pago, metodo_pago, folio) VALUES (?, ?, ?, ?)`,
		p.UsuarioID, p.Cantidad, p.Metodo, p.Folio)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		`SELECT creado_en FROM pagos WHERE id_compra = ?`, p.ID).Scan(&p.CreadoEn)
}

// GetByID retrieves a payment by its id.
func (r *PagoRepo) GetByID(ctx context.Context, id uint64) (*model.Pago, error) {
	var p model.Pago
	err := r.db.QueryRowContext(ctx,
		`SELECT id_compra, id_usuario, cantidad_pago, metodo_pago, folio, creado_en
		 FROM pagos WHERE id_compra = ?`, id).
		Scan(&p.ID, &p.UsuarioID, &p.Cantidad, &p.Metodo, &p.Folio, &p.CreadoEn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByIDTx is GetByID within a transaction.
func (r *PagoRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Pago, error) {
	var p model.Pago
	err := tx.QueryRowContext(ctx,
		`SELECT id_compra, id_usuario, cantidad_pago, metodo_pago, folio, creado_en
		 FROM pagos WHERE id_compra = ?`, id).
		Scan(&p.ID, &p.UsuarioID, &p.Cantidad, &p.Metodo, &p.Folio, &p.CreadoEn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPagoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUsuario returns all payments of a user, newest first.
func (r *PagoRepo) ListByUsuario(ctx context.Context, usuarioID uint64) ([]model.Pago, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_compra, id_usuario, cantidad_pago, metodo_pago, folio, creado_en
		 FROM pagos WHERE id_usuario = ? ORDER BY creado_en DESC`, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Pago
	for rows.Next() {
		var p model.Pago
		if err := rows.Scan(&p.ID, &p.UsuarioID, &p.Cantidad, &p.Metodo, &p.Folio, &p.CreadoEn); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// List returns every payment, newest first.
func (r *PagoRepo) List(ctx context.Context) ([]model.Pago, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_compra, id_usuario, cantidad_pago, metodo_pago, folio, creado_en
		 FROM pagos ORDER BY creado_en DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Pago
	for rows.Next() {
		var p model.Pago
		if err := rows.Scan(&p.ID, &p.UsuarioID, &p.Cantidad, &p.Metodo, &p.Folio, &p.CreadoEn); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// DeleteTx removes a payment row within a transaction. The engine deletes
// dependent tickets first; a straggling FK violation surfaces as an error.
func (r *PagoRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM pagos WHERE id_compra = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPagoNotFound
	}
	return nil
}
