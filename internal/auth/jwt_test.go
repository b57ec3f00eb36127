package auth

import (
	"testing"
	"time"
)

const testKey = "test-signing-key"

// TestIssueParse_RoundTrip checks an issued token parses back to its claims.
func TestIssueParse_RoundTrip(t *testing.T) {
	s, err := Issue("uid-1", "admin@club.edu", "clubsite-admin", testKey, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	claims, err := Parse(s.Token, testKey, "clubsite-admin")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "uid-1" || claims.Email != "admin@club.edu" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

// TestParse_IssuerMismatch rejects tokens from a different issuer.
func TestParse_IssuerMismatch(t *testing.T) {
	s, err := Issue("uid-1", "admin@club.edu", "someone-else", testKey, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := Parse(s.Token, testKey, "clubsite-admin"); err == nil {
		t.Error("expected issuer mismatch error")
	}
}

// TestParse_WrongKey rejects tokens signed with another key.
func TestParse_WrongKey(t *testing.T) {
	s, err := Issue("uid-1", "", "clubsite-admin", testKey, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := Parse(s.Token, "other-key", "clubsite-admin"); err == nil {
		t.Error("expected signature error")
	}
}
