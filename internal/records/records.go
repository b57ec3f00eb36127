// Package records persists the site's document collections in Postgres.
package records

import (
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a fetch by id matches no record.
var ErrNotFound = errors.New("record not found")

// IsPermissionDenied reports whether err is a Postgres insufficient_privilege
// rejection. Admin read views show a dedicated message for this case.
func IsPermissionDenied(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42501"
}

// sortMembershipsByCreatedDesc orders newest first. Zero timestamps sort last.
func sortMembershipsByCreatedDesc(list []Membership) {
	sort.SliceStable(list, func(i, j int) bool {
		return createdMillis(list[i].CreatedAt) > createdMillis(list[j].CreatedAt)
	})
}

// sortMessagesByCreatedDesc orders newest first. Zero timestamps sort last.
func sortMessagesByCreatedDesc(list []Message) {
	sort.SliceStable(list, func(i, j int) bool {
		return createdMillis(list[i].CreatedAt) > createdMillis(list[j].CreatedAt)
	})
}

// createdMillis treats a missing timestamp as epoch zero.
func createdMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
