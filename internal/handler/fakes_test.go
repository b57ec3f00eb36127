package handler

import (
	"context"
	"fmt"
	"time"

	"clubsite/internal/cloudinary"
	"clubsite/internal/identity"
	"clubsite/internal/records"
	"clubsite/internal/stats"
)

// In-memory stores mirroring the repository contracts, so the handlers can
// be exercised end to end without Postgres.

type fakeEvents struct {
	seq   int
	order []string
	items map[string]records.Event
	err   error // forced list/get error when set
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{items: make(map[string]records.Event)}
}

func (f *fakeEvents) List(_ context.Context, _ string) ([]records.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]records.Event, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeEvents) Get(_ context.Context, id string) (*records.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.items[id]
	if !ok {
		return nil, records.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEvents) Create(_ context.Context, e records.Event) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	id := fmt.Sprintf("evt-%d", f.seq)
	e.ID = id
	e.CreatedAt = time.Now()
	f.items[id] = e
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeEvents) Update(_ context.Context, id string, e records.Event) error {
	if _, ok := f.items[id]; !ok {
		return records.ErrNotFound
	}
	created := f.items[id].CreatedAt
	e.ID = id
	e.CreatedAt = created
	f.items[id] = e
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return records.ErrNotFound
	}
	delete(f.items, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeCerts struct {
	items map[string]records.Certificate
}

func newFakeCerts() *fakeCerts {
	return &fakeCerts{items: make(map[string]records.Certificate)}
}

func (f *fakeCerts) List(context.Context) ([]records.Certificate, error) {
	out := make([]records.Certificate, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCerts) Get(_ context.Context, id string) (*records.Certificate, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, records.ErrNotFound
	}
	return &c, nil
}

// Upsert mirrors the merge semantics of the SQL repository: blank incoming
// fields preserve stored values.
func (f *fakeCerts) Upsert(_ context.Context, id string, c records.Certificate) error {
	existing := f.items[id]
	c.ID = id
	c.Name = orKeep(c.Name, existing.Name)
	c.StudentID = orKeep(c.StudentID, existing.StudentID)
	c.Course = orKeep(c.Course, existing.Course)
	c.IssueDate = orKeep(c.IssueDate, existing.IssueDate)
	c.Status = orKeep(c.Status, existing.Status)
	c.IssuedBy = orKeep(c.IssuedBy, existing.IssuedBy)
	c.CertImageURL = orKeep(c.CertImageURL, existing.CertImageURL)
	c.UpdatedAt = time.Now()
	f.items[id] = c
	return nil
}

func orKeep(incoming, stored string) string {
	if incoming == "" {
		return stored
	}
	return incoming
}

func (f *fakeCerts) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return records.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCerts) FindByStudentID(_ context.Context, sid string) ([]records.Certificate, error) {
	var out []records.Certificate
	for _, c := range f.items {
		if c.StudentID == sid {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeMemberships struct {
	seq   int
	items []records.Membership
	err   error
}

func (f *fakeMemberships) List(context.Context) ([]records.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeMemberships) Create(_ context.Context, m records.Membership) (string, error) {
	f.seq++
	m.ID = fmt.Sprintf("mem-%d", f.seq)
	m.CreatedAt = time.Now()
	f.items = append(f.items, m)
	return m.ID, nil
}

type fakeMessages struct {
	seq   int
	items []records.Message
	err   error
}

func (f *fakeMessages) List(context.Context) ([]records.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeMessages) Create(_ context.Context, m records.Message) (string, error) {
	f.seq++
	m.ID = fmt.Sprintf("msg-%d", f.seq)
	m.CreatedAt = time.Now()
	f.items = append(f.items, m)
	return m.ID, nil
}

type fakeGrants struct {
	granted map[string]bool
	err     error
}

func (f *fakeGrants) HasGrant(_ context.Context, uid string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.granted[uid], nil
}

type fakeIdentity struct {
	uids      map[string]string // email -> uid
	signedOut []string
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*identity.Identity, error) {
	uid, ok := f.uids[email]
	if !ok || password == "" {
		return nil, identity.ErrBadCredentials
	}
	return &identity.Identity{UID: uid, Email: email}, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, uid string) error {
	f.signedOut = append(f.signedOut, uid)
	return nil
}

// fakeStats aggregates straight off the membership fake, no cache.
type fakeStats struct {
	memberships *fakeMemberships
}

func (f *fakeStats) Snapshot(ctx context.Context) (stats.Snapshot, error) {
	list, err := f.memberships.List(ctx)
	if err != nil {
		return stats.Snapshot{}, err
	}
	return stats.Aggregate(list), nil
}

func (f *fakeStats) Invalidate(context.Context) {}

type fakeSessions struct {
	revoked []string
}

func (f *fakeSessions) Revoke(_ context.Context, token string, _ time.Time) error {
	f.revoked = append(f.revoked, token)
	return nil
}

type fakeUploader struct{}

func (fakeUploader) UploadBase64(context.Context, string) (*cloudinary.UploadResult, error) {
	return &cloudinary.UploadResult{SecureURL: "https://cdn.test/x.png", PublicID: "clubsite/x"}, nil
}

func (fakeUploader) UploadBytes(context.Context, []byte, string) (*cloudinary.UploadResult, error) {
	return &cloudinary.UploadResult{SecureURL: "https://cdn.test/x.png", PublicID: "clubsite/x"}, nil
}
