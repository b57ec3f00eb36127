package records

import (
	"context"
	"database/sql"
)

// GrantRepo looks up admin grants. A grant row keyed by the authenticated
// identity id is the whole authorization model: existence is sufficient.
type GrantRepo struct {
	db *sql.DB
}

// NewGrantRepo creates a repo.
func NewGrantRepo(db *sql.DB) *GrantRepo {
	return &GrantRepo{db: db}
}

// HasGrant reports whether an admin grant exists for the identity id.
func (r *GrantRepo) HasGrant(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM admin_grants WHERE uid = $1)`, uid).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
