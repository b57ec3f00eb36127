package records

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Message is one contact-form submission. Append-only; admins read them.
type Message struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageRepo persists contact messages.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a repo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// List returns messages newest first, with the same ordered-query fallback
// as memberships.
func (r *MessageRepo) List(ctx context.Context) ([]Message, error) {
	res, err := r.listMessages(ctx, true)
	if err != nil {
		res, err = r.listMessages(ctx, false)
		if err != nil {
			return nil, err
		}
		sortMessagesByCreatedDesc(res)
	}
	return res, nil
}

func (r *MessageRepo) listMessages(ctx context.Context, ordered bool) ([]Message, error) {
	query := `SELECT id, email, subject, message, created_at FROM messages`
	if ordered {
		query += ` ORDER BY created_at DESC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// Get returns a message by id. Used by the notification worker.
func (r *MessageRepo) Get(ctx context.Context, id string) (*Message, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, subject, message, created_at FROM messages WHERE id = $1
	`, id)
	var m Message
	if err := row.Scan(&m.ID, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create appends a new message and returns the generated id.
func (r *MessageRepo) Create(ctx context.Context, m Message) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, email, subject, message)
		VALUES ($1,$2,$3,$4)
	`, id, m.Email, m.Subject, m.Message)
	if err != nil {
		return "", err
	}
	return id, nil
}
