package records

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Membership is one submitted application from the join form.
type Membership struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	StudentID  string    `json:"studentId"`
	Department string    `json:"department"`
	Semester   string    `json:"semester"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MembershipRepo persists membership applications.
type MembershipRepo struct {
	db *sql.DB
}

// NewMembershipRepo creates a repo.
func NewMembershipRepo(db *sql.DB) *MembershipRepo {
	return &MembershipRepo{db: db}
}

// List returns memberships newest first. When the ordered query is rejected
// by the store it falls back to an unordered fetch plus a client-side sort.
func (r *MembershipRepo) List(ctx context.Context) ([]Membership, error) {
	res, err := r.listMemberships(ctx, true)
	if err != nil {
		res, err = r.listMemberships(ctx, false)
		if err != nil {
			return nil, err
		}
		sortMembershipsByCreatedDesc(res)
	}
	return res, nil
}

func (r *MembershipRepo) listMemberships(ctx context.Context, ordered bool) ([]Membership, error) {
	query := `SELECT id, name, email, student_id, department, semester, created_at FROM memberships`
	if ordered {
		query += ` ORDER BY created_at DESC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.StudentID, &m.Department, &m.Semester, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// Get returns a membership by id. Used by the notification worker.
func (r *MembershipRepo) Get(ctx context.Context, id string) (*Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, student_id, department, semester, created_at
		FROM memberships WHERE id = $1
	`, id)
	var m Membership
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.StudentID, &m.Department, &m.Semester, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new membership application and returns the generated id.
func (r *MembershipRepo) Create(ctx context.Context, m Membership) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO memberships (id, name, email, student_id, department, semester)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, id, m.Name, m.Email, m.StudentID, m.Department, m.Semester)
	if err != nil {
		return "", err
	}
	return id, nil
}
