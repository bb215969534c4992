package auth

import (
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret-test-secret-test-secret", 30*time.Minute)

	tok, err := m.CreateAccessToken("teste@test.com")
	if err != nil {
		t.Fatalf("CreateAccessToken() error: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if claims.Subject != "teste@test.com" {
		t.Errorf("expected subject teste@test.com, got %s", claims.Subject)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret-test-secret-test-secret", -time.Minute)

	tok, err := m.CreateAccessToken("teste@test.com")
	if err != nil {
		t.Fatalf("CreateAccessToken() error: %v", err)
	}

	if _, err := m.Parse(tok); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("issuer-secret-issuer-secret-issuer", 30*time.Minute)
	verifier := NewTokenManager("other-secret-other-secret-other-sec", 30*time.Minute)

	tok, err := issuer.CreateAccessToken("teste@test.com")
	if err != nil {
		t.Fatalf("CreateAccessToken() error: %v", err)
	}

	if _, err := verifier.Parse(tok); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	m := NewTokenManager("test-secret-test-secret-test-secret", 30*time.Minute)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Parse(tok); err == nil {
			t.Errorf("expected error for malformed token %q", tok)
		}
	}
}
