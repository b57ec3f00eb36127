package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a published club event. Date fields hold calendar dates
// (YYYY-MM-DD) or are empty when not yet announced.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Wing             string    `json:"wing,omitempty"`
	Semester         string    `json:"semester"`
	DateISO          string    `json:"dateISO"`
	DeadlineISO      string    `json:"deadlineISO"`
	Venue            string    `json:"venue"`
	BannerURL        string    `json:"bannerUrl,omitempty"`
	Description      string    `json:"description"`
	RegistrationLink string    `json:"registrationLink,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Order fields accepted by EventRepo.List.
const (
	OrderByDate     = "dateISO"
	OrderByDeadline = "deadlineISO"
)

// EventRepo persists events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo creates a repo.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, title, wing, semester, date_iso, deadline_iso, venue, banner_url, description, registration_link, status, created_at`

// List returns all events ordered ascending by the given date field.
// Events without that field sort last.
func (r *EventRepo) List(ctx context.Context, orderField string) ([]Event, error) {
	column := "date_iso"
	switch orderField {
	case OrderByDate, "":
	case OrderByDeadline:
		column = "deadline_iso"
	default:
		return nil, fmt.Errorf("unknown event order field %q", orderField)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		ORDER BY NULLIF(`+column+`, '') ASC NULLS LAST
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Event
	for rows.Next() {
		var e Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// Get returns a single event by id. Missing records map to ErrNotFound.
func (r *EventRepo) Get(ctx context.Context, id string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events WHERE id = $1
	`, id)
	var e Event
	if err := scanEvent(row, &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event and returns the generated id.
// created_at is assigned by the database.
func (r *EventRepo) Create(ctx context.Context, e Event) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, title, wing, semester, date_iso, deadline_iso, venue, banner_url, description, registration_link, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, id, e.Title, e.Wing, e.Semester, e.DateISO, e.DeadlineISO, e.Venue, e.BannerURL, e.Description, e.RegistrationLink, e.Status)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the editable fields of an existing event.
func (r *EventRepo) Update(ctx context.Context, id string, e Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET title = $2, wing = $3, semester = $4, date_iso = $5, deadline_iso = $6,
		    venue = $7, banner_url = $8, description = $9, registration_link = $10, status = $11
		WHERE id = $1
	`, id, e.Title, e.Wing, e.Semester, e.DateISO, e.DeadlineISO, e.Venue, e.BannerURL, e.Description, e.RegistrationLink, e.Status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner, e *Event) error {
	return row.Scan(&e.ID, &e.Title, &e.Wing, &e.Semester, &e.DateISO, &e.DeadlineISO,
		&e.Venue, &e.BannerURL, &e.Description, &e.RegistrationLink, &e.Status, &e.CreatedAt)
}
