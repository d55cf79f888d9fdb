package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, err := mgr.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	sub, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("expected subject user-1, got %q", sub)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	mgr := NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = mgr.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)
	if _, err := mgr.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
