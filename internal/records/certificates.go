package records

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Certificate is issued per course completion. The certificate id is chosen
// by the admin at creation time and doubles as the primary key, so public
// verification is a straight fetch by id.
type Certificate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StudentID    string    `json:"student_id"`
	Course       string    `json:"course"`
	IssueDate    string    `json:"issue_date"`
	Status       string    `json:"status"`
	IssuedBy     string    `json:"issued_by"`
	CertImageURL string    `json:"certImageUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CertificateRepo persists certificates.
type CertificateRepo struct {
	db *sql.DB
}

// NewCertificateRepo creates a repo.
func NewCertificateRepo(db *sql.DB) *CertificateRepo {
	return &CertificateRepo{db: db}
}

const certColumns = `cert_id, name, student_id, course, issue_date, status, issued_by, cert_image_url, updated_at`

// List returns all certificates. No canonical order.
func (r *CertificateRepo) List(ctx context.Context) ([]Certificate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+certColumns+` FROM certificates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Certificate
	for rows.Next() {
		var c Certificate
		if err := scanCertificate(rows, &c); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// Get returns a certificate by its id. Missing records map to ErrNotFound.
func (r *CertificateRepo) Get(ctx context.Context, id string) (*Certificate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+certColumns+` FROM certificates WHERE cert_id = $1`, id)
	var c Certificate
	if err := scanCertificate(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Upsert creates the certificate or merges fields into the existing record.
// Blank incoming fields preserve the stored value, so repeated saves to the
// same id never lose data and never duplicate the record.
func (r *CertificateRepo) Upsert(ctx context.Context, id string, c Certificate) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO certificates (cert_id, name, student_id, course, issue_date, status, issued_by, cert_image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (cert_id) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), certificates.name),
			student_id = COALESCE(NULLIF(EXCLUDED.student_id, ''), certificates.student_id),
			course = COALESCE(NULLIF(EXCLUDED.course, ''), certificates.course),
			issue_date = COALESCE(NULLIF(EXCLUDED.issue_date, ''), certificates.issue_date),
			status = COALESCE(NULLIF(EXCLUDED.status, ''), certificates.status),
			issued_by = COALESCE(NULLIF(EXCLUDED.issued_by, ''), certificates.issued_by),
			cert_image_url = COALESCE(NULLIF(EXCLUDED.cert_image_url, ''), certificates.cert_image_url),
			updated_at = NOW()
	`, id, c.Name, c.StudentID, c.Course, c.IssueDate, c.Status, c.IssuedBy, c.CertImageURL)
	return err
}

// Delete removes a certificate.
func (r *CertificateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM certificates WHERE cert_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByStudentID returns every certificate issued to one student.
func (r *CertificateRepo) FindByStudentID(ctx context.Context, studentID string) ([]Certificate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+certColumns+` FROM certificates WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Certificate
	for rows.Next() {
		var c Certificate
		if err := scanCertificate(rows, &c); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func scanCertificate(row rowScanner, c *Certificate) error {
	return row.Scan(&c.ID, &c.Name, &c.StudentID, &c.Course, &c.IssueDate,
		&c.Status, &c.IssuedBy, &c.CertImageURL, &c.UpdatedAt)
}
