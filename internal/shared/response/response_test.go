package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pharma-prep-core/internal/shared/errors"

	"github.com/gin-gonic/gin"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return w, body
}

func TestErrorEnvelope(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Error(c, apperrors.Validation("CHAMPS_REQUIS", "Champs manquants", map[string]interface{}{
			"champs": map[string]string{"name": "Ce champ est requis"},
		}))
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body["error"] != "Champs manquants" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	details := body["details"].(map[string]any)
	if details["code"] != "CHAMPS_REQUIS" || details["champs"] == nil {
		t.Fatalf("unexpected details: %#v", details)
	}
}

func TestErrorHidesInternalCause(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Error(c, errors.New("pq: password authentication failed"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body["error"] != "Une erreur interne s'est produite" {
		t.Fatalf("internal cause leaked: %v", body["error"])
	}
}

func TestOKEnvelope(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) {
		OK(c, []string{})
	})

	if body["success"] != true {
		t.Fatalf("expected success true, got %#v", body)
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty list, got %#v", body["data"])
	}
}
