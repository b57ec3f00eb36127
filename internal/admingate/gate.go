// Package admingate decides whether a signed-in identity may use the admin
// dashboard. The decision is modeled as an explicit state machine driven by
// auth-state changes, one gate instance per evaluation.
package admingate

import (
	"context"
	"log"
)

// State is a named gate state.
type State string

// Gate states. Permitted transitions:
//
//	LOADING   -> LOGIN | CHECKING
//	LOGIN     -> CHECKING        (successful sign-in)
//	CHECKING  -> DASHBOARD | DENIED
//	DASHBOARD -> LOGIN           (sign-out)
//	DENIED    -> LOGIN           (sign-out)
const (
	StateLoading   State = "LOADING"
	StateLogin     State = "LOGIN"
	StateChecking  State = "CHECKING"
	StateDenied    State = "DENIED"
	StateDashboard State = "DASHBOARD"
)

// Identity is the signed-in principal delivered by the auth service.
type Identity struct {
	UID   string
	Email string
}

// GrantChecker resolves an identity id to an admin grant.
type GrantChecker interface {
	HasGrant(ctx context.Context, uid string) (bool, error)
}

// SessionTerminator force-signs-out an identity. A denied identity must
// re-authenticate before the gate will look at it again.
type SessionTerminator interface {
	SignOut(ctx context.Context, uid string) error
}

// Gate is the authorization state machine. Not safe for concurrent use;
// each evaluation owns its own instance.
type Gate struct {
	state    State
	grants   GrantChecker
	sessions SessionTerminator
}

// New returns a gate in the initial LOADING state.
func New(grants GrantChecker, sessions SessionTerminator) *Gate {
	return &Gate{state: StateLoading, grants: grants, sessions: sessions}
}

// State returns the current gate state.
func (g *Gate) State() State {
	return g.state
}

// OnAuthChange is the sole trigger: it receives the current identity (or nil
// for signed-out) and resolves the next state. A missing grant and a failed
// grant lookup are both denial; the session is terminated either way so the
// identity cannot retry the gate without re-authenticating.
func (g *Gate) OnAuthChange(ctx context.Context, id *Identity) State {
	if id == nil {
		g.state = StateLogin
		return g.state
	}

	g.state = StateChecking
	ok, err := g.grants.HasGrant(ctx, id.UID)
	if err != nil {
		log.Printf("admin grant lookup failed for %s: %v", id.UID, err)
	}
	if err != nil || !ok {
		if serr := g.sessions.SignOut(ctx, id.UID); serr != nil {
			log.Printf("forced sign-out failed for %s: %v", id.UID, serr)
		}
		g.state = StateDenied
		return g.state
	}

	g.state = StateDashboard
	return g.state
}
