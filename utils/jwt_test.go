package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "CLIENT", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, role, err := ExtractClaimsFromToken(token)
	if err != nil {
		t.Fatalf("ExtractClaimsFromToken: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want %q", userID, "user-1")
	}
	if role != "CLIENT" {
		t.Errorf("role = %q, want %q", role, "CLIENT")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "CLIENT", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "CLIENT", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, _, err := ExtractClaimsFromToken(tampered); err == nil {
		t.Error("tampered token must be rejected")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	if a != HashToken("token-a") {
		t.Error("hashing must be deterministic")
	}
	if a == HashToken("token-b") {
		t.Error("different tokens must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected a hex sha-256 digest, got length %d", len(a))
	}
}
