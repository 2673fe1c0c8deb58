package utils

import (
	"strings"
	"testing"

	apperrors "pharma-prep-core/internal/shared/errors"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Fatalf("unexpected bcrypt prefix: %s", hash)
	}
	if !VerifyPassword(hash, "motdepasse123") {
		t.Fatal("expected password to match")
	}
	if VerifyPassword(hash, "autre") {
		t.Fatal("expected password mismatch")
	}
}

func TestHashPasswordFallsBackOnInvalidCost(t *testing.T) {
	hash, err := HashPassword("motdepasse123", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Fatalf("expected default cost, got %s", hash)
	}
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	if VerifyPassword("not-a-hash", "x") {
		t.Fatal("expected garbage hash to be rejected")
	}
}

func TestHashPasswordTooLongIsValidationError(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73), 4)
	svcErr, ok := apperrors.As(err)
	if !ok || svcErr.Code != "PASSWORD_TOO_LONG" || apperrors.HTTPStatus(err) != 400 {
		t.Fatalf("expected PASSWORD_TOO_LONG 400, got %v", err)
	}

	if _, err := HashPassword(strings.Repeat("a", 72), 4); err != nil {
		t.Fatalf("72 bytes must be accepted: %v", err)
	}
}
