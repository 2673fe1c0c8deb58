package utils

import (
	"net/http/httptest"
	"testing"

	apperrors "pharma-prep-core/internal/shared/errors"

	"github.com/gin-gonic/gin"
)

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParseIDParam(c, "id")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}

	for _, raw := range []string{"abc", "0", "-3", ""} {
		c.Params = gin.Params{{Key: "id", Value: raw}}
		if _, err := ParseIDParam(c, "id"); !apperrors.IsKind(err, apperrors.KindValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestParseIDQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Request = httptest.NewRequest("GET", "/?patientId=5", nil)
	id, err := ParseIDQuery(c, "patientId")
	if err != nil || id == nil || *id != 5 {
		t.Fatalf("expected 5, got %v (%v)", id, err)
	}

	c.Request = httptest.NewRequest("GET", "/", nil)
	id, err = ParseIDQuery(c, "patientId")
	if err != nil || id != nil {
		t.Fatalf("expected nil id, got %v (%v)", id, err)
	}

	c.Request = httptest.NewRequest("GET", "/?patientId=x", nil)
	if _, err := ParseIDQuery(c, "patientId"); err == nil {
		t.Fatal("expected validation error")
	}
}
