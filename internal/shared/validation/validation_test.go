package validation

import (
	"testing"

	apperrors "pharma-prep-core/internal/shared/errors"
)

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Role  string  `json:"role" validate:"required,oneof=admin pharmacist"`
	Age   *int    `json:"age" validate:"required,gte=0"`
	Items []child `json:"items" validate:"omitempty,dive"`
}

type child struct {
	Dci string `json:"dci" validate:"required"`
}

func TestStructNamesEveryFailingField(t *testing.T) {
	err := Struct(sample{Email: "bad", Items: []child{{}}})
	if err == nil {
		t.Fatal("expected validation error")
	}

	svcErr, ok := apperrors.As(err)
	if !ok || svcErr.Kind != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	champs := svcErr.Details["champs"].(map[string]string)
	for _, field := range []string{"email", "role", "age", "items[0].dci"} {
		if _, ok := champs[field]; !ok {
			t.Fatalf("expected field %q in %v", field, champs)
		}
	}
	if champs["age"] != "Ce champ est requis" {
		t.Fatalf("unexpected message for age: %q", champs["age"])
	}
}

func TestStructAcceptsValidPayload(t *testing.T) {
	age := 0
	if err := Struct(sample{Email: "a@b.fr", Role: "admin", Age: &age}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
