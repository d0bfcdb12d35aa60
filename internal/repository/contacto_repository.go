package repository

import (
	"context"
	"database/sql"

	"github.com/cinelatam/taquilla-api/internal/model"
)

// ContactoRepo stores messages from the public contact form.
type ContactoRepo struct {
	db *sql.DB
}

// NewContactoRepo returns a ContactoRepo bound to db.
func NewContactoRepo(db *sql.DB) *ContactoRepo { return &ContactoRepo{db: db} }

// Create inserts a message and populates its ID and timestamp.
func (r *ContactoRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message) VALUES (?, ?, ?)`,
		m.Name, m.Email, m.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM contact_messages WHERE id = ?`, m.ID).Scan(&m.CreatedAt)
}

// List returns all messages, newest first.
func (r *ContactoRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
