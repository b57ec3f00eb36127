package identity

import (
	"context"
	"errors"
	"testing"
)

// TestSignIn_SkipMode: skip mode yields a deterministic identity per email.
func TestSignIn_SkipMode(t *testing.T) {
	c := New("", "", true)
	first, err := c.SignIn(context.Background(), "admin@club.edu", "pw")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	second, err := c.SignIn(context.Background(), "admin@club.edu", "pw")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if first.UID == "" || first.UID != second.UID {
		t.Errorf("expected stable uid, got %q and %q", first.UID, second.UID)
	}
	if first.Email != "admin@club.edu" {
		t.Errorf("unexpected email %q", first.Email)
	}
}

// TestSignIn_EmptyCredentials are rejected before any network call.
func TestSignIn_EmptyCredentials(t *testing.T) {
	c := New("", "", true)
	if _, err := c.SignIn(context.Background(), "", ""); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials, got %v", err)
	}
}
