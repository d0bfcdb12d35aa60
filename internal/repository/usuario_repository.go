package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// UsuarioRepo mirrors the 'usuarios' table.
type UsuarioRepo struct{ DB *sql.DB }

// NewUsuarioRepo returns a UsuarioRepo bound to db.
func NewUsuarioRepo(db *sql.DB) *UsuarioRepo { return &UsuarioRepo{DB: db} }

const usuarioCols = `id_usuario, nombre_usuario, apellido_usuario, edad_usuario,
	correo_usuario, telefono_usuario, contrasena_usuario, tipo_usuario`

// Create inserts a user and populates its ID. Contrasena must already be
// hashed by the caller. Duplicate emails map to ErrCorreoExists.
func (r *UsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	u.Correo = strings.ToLower(strings.TrimSpace(u.Correo))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO usuarios (nombre_usuario, apellido_usuario, edad_usuario, correo_usuario,
		 telefono_usuario, contrasena_usuario, tipo_usuario) VALUES (?,?,?,?,?,?,?)`,
		u.Nombre, u.Apellido, u.Edad, u.Correo, u.Telefono, u.Contrasena, u.Rol)
	if err != nil {
		if isDuplicate(err) {
			return ErrCorreoExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByCorreo fetches a user by normalized email.
func (r *UsuarioRepo) GetByCorreo(ctx context.Context, correo string) (*model.Usuario, error) {
	correo = strings.ToLower(strings.TrimSpace(correo))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		`SELECT `+usuarioCols+` FROM usuarios WHERE correo_usuario = ? LIMIT 1`, correo))
}

// GetByID fetches a user by id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id uint64) (*model.Usuario, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		`SELECT `+usuarioCols+` FROM usuarios WHERE id_usuario = ? LIMIT 1`, id))
}

func (r *UsuarioRepo) scanOne(row *sql.Row) (*model.Usuario, error) {
	var u model.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Edad, &u.Correo, &u.Telefono, &u.Contrasena, &u.Rol)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by id.
func (r *UsuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+usuarioCols+` FROM usuarios ORDER BY id_usuario`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Usuario
	for rows.Next() {
		var u model.Usuario
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Edad, &u.Correo, &u.Telefono, &u.Contrasena, &u.Rol); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// CountAdmins returns the number of admin accounts. The last-admin guard
// reads this inside the same transaction that mutates the account.
func (r *UsuarioRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE tipo_usuario = ?`, model.RolAdmin).Scan(&n)
	return n, err
}

// CountAdminsTx is CountAdmins within a transaction, locking the counted
// rows so two concurrent downgrades cannot both pass the guard.
func (r *UsuarioRepo) CountAdminsTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE tipo_usuario = ? FOR UPDATE`, model.RolAdmin).Scan(&n)
	return n, err
}

// UpdateTx rewrites a user's mutable fields within a transaction.
func (r *UsuarioRepo) UpdateTx(ctx context.Context, tx *sql.Tx, u *model.Usuario) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE usuarios SET nombre_usuario = ?, apellido_usuario = ?, edad_usuario = ?,
		 correo_usuario = ?, telefono_usuario = ?, contrasena_usuario = ?, tipo_usuario = ?
		 WHERE id_usuario = ?`,
		u.Nombre, u.Apellido, u.Edad, u.Correo, u.Telefono, u.Contrasena, u.Rol, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrCorreoExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUsuarioNotFound
	}
	return nil
}

// GetByIDTx fetches a user by id within a transaction, locking the row.
func (r *UsuarioRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Usuario, error) {
	return r.scanOne(tx.QueryRowContext(ctx,
		`SELECT `+usuarioCols+` FROM usuarios WHERE id_usuario = ? LIMIT 1 FOR UPDATE`, id))
}

// DeleteTx removes a user within a transaction. The caller enforces the
// last-admin guard first.
func (r *UsuarioRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM usuarios WHERE id_usuario = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUsuarioNotFound
	}
	return nil
}
