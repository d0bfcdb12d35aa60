package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// DulceriaRepo provides CRUD operations for candy-shop products.
type DulceriaRepo struct {
	db *sql.DB
}

// NewDulceriaRepo returns a DulceriaRepo bound to db.
func NewDulceriaRepo(db *sql.DB) *DulceriaRepo { return &DulceriaRepo{db: db} }

// Create inserts a product and populates its ID.
func (r *DulceriaRepo) Create(ctx context.Context, p *model.Producto) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO dulceria (nombre_producto, precio_producto) VALUES (?, ?)`,
		p.Nombre, p.Precio)
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

// GetByID retrieves a product by id.
func (r *DulceriaRepo) GetByID(ctx context.Context, id uint64) (*model.Producto, error) {
	var p model.Producto
	err := r.db.QueryRowContext(ctx,
		`SELECT id_producto, nombre_producto, precio_producto FROM dulceria WHERE id_producto = ?`,
		id).Scan(&p.ID, &p.Nombre, &p.Precio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all products ordered by id.
func (r *DulceriaRepo) List(ctx context.Context) ([]model.Producto, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_producto, nombre_producto, precio_producto FROM dulceria ORDER BY id_producto`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Producto
	for rows.Next() {
		var p model.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Precio); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Update rewrites a product row.
func (r *DulceriaRepo) Update(ctx context.Context, p *model.Producto) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dulceria SET nombre_producto = ?, precio_producto = ? WHERE id_producto = ?`,
		p.Nombre, p.Precio, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// Delete removes a product by id.
func (r *DulceriaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dulceria WHERE id_producto = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductoNotFound
	}
	return nil
}
