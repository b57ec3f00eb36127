package admingate

import (
	"context"
	"errors"
	"testing"
)

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

type fakeSessions struct {
	signedOut []string
}

func (f *fakeSessions) SignOut(_ context.Context, uid string) error {
	f.signedOut = append(f.signedOut, uid)
	return nil
}

// TestGate_InitialState: a fresh gate is LOADING.
func TestGate_InitialState(t *testing.T) {
	g := New(&fakeGrants{}, &fakeSessions{})
	if g.State() != StateLoading {
		t.Errorf("expected LOADING, got %s", g.State())
	}
}

// TestGate_NoIdentity: no signed-in identity lands on LOGIN.
func TestGate_NoIdentity(t *testing.T) {
	g := New(&fakeGrants{}, &fakeSessions{})
	if got := g.OnAuthChange(context.Background(), nil); got != StateLogin {
		t.Errorf("expected LOGIN, got %s", got)
	}
}

// TestGate_GrantedIdentity: a matching grant opens the dashboard.
func TestGate_GrantedIdentity(t *testing.T) {
	sessions := &fakeSessions{}
	g := New(&fakeGrants{granted: map[string]bool{"uid-1": true}}, sessions)
	got := g.OnAuthChange(context.Background(), &Identity{UID: "uid-1", Email: "admin@club.edu"})
	if got != StateDashboard {
		t.Errorf("expected DASHBOARD, got %s", got)
	}
	if len(sessions.signedOut) != 0 {
		t.Errorf("no sign-out expected, got %v", sessions.signedOut)
	}
}

// TestGate_MissingGrant: signed in without a grant is denied and the session
// is terminated.
func TestGate_MissingGrant(t *testing.T) {
	sessions := &fakeSessions{}
	g := New(&fakeGrants{}, sessions)
	got := g.OnAuthChange(context.Background(), &Identity{UID: "uid-2"})
	if got != StateDenied {
		t.Errorf("expected DENIED, got %s", got)
	}
	if len(sessions.signedOut) != 1 || sessions.signedOut[0] != "uid-2" {
		t.Errorf("expected forced sign-out of uid-2, got %v", sessions.signedOut)
	}
}

// TestGate_LookupFailureIsDenial: a failed grant lookup behaves exactly like
// a missing grant, including the forced sign-out. Fail closed.
func TestGate_LookupFailureIsDenial(t *testing.T) {
	sessions := &fakeSessions{}
	g := New(&fakeGrants{err: errors.New("store unreachable")}, sessions)
	got := g.OnAuthChange(context.Background(), &Identity{UID: "uid-3"})
	if got != StateDenied {
		t.Errorf("expected DENIED on lookup failure, got %s", got)
	}
	if len(sessions.signedOut) != 1 {
		t.Errorf("expected forced sign-out, got %v", sessions.signedOut)
	}
}

// TestGate_SignOutReturnsToLogin: after DASHBOARD or DENIED, a signed-out
// auth change returns the gate to LOGIN.
func TestGate_SignOutReturnsToLogin(t *testing.T) {
	g := New(&fakeGrants{granted: map[string]bool{"uid-1": true}}, &fakeSessions{})
	ctx := context.Background()
	g.OnAuthChange(ctx, &Identity{UID: "uid-1"})
	if got := g.OnAuthChange(ctx, nil); got != StateLogin {
		t.Errorf("expected LOGIN after sign-out, got %s", got)
	}
}
