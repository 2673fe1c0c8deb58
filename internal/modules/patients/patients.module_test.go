package patients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharma-prep-core/internal/modules/patients/controllers"
	"pharma-prep-core/internal/modules/patients/dto"
	"pharma-prep-core/internal/modules/patients/services"
	prepdto "pharma-prep-core/internal/modules/preparations/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type stubRepo struct {
	patients map[int64]dto.Patient
}

func (s *stubRepo) Create(_ context.Context, p *dto.Patient, preps []*prepdto.MedicinePreparation) (*dto.Patient, []prepdto.MedicinePreparation, error) {
	created := *p
	created.ID = int64(len(s.patients) + 1)
	s.patients[created.ID] = created
	rows := []prepdto.MedicinePreparation{}
	for _, prep := range preps {
		rows = append(rows, *prep)
	}
	return &created, rows, nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*dto.Patient, error) {
	if p, ok := s.patients[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *stubRepo) ListPreparations(context.Context, int64) ([]prepdto.MedicinePreparation, error) {
	return nil, nil
}

func (s *stubRepo) List(context.Context) ([]dto.Patient, error) {
	out := []dto.Patient{}
	for _, p := range s.patients {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, p *dto.Patient) (*dto.Patient, error) {
	s.patients[p.ID] = *p
	return p, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) ([]int64, bool, error) {
	_, ok := s.patients[id]
	delete(s.patients, id)
	return nil, ok, nil
}

type silentNotifier struct{}

func (silentNotifier) NotifyCreated(context.Context, []prepdto.MedicinePreparation) {}
func (silentNotifier) NotifyDeleted(context.Context, int64, []int64)                {}

type tokenAuthenticator map[string]*identity.User

func (a tokenAuthenticator) Authenticate(_ context.Context, token string) (*identity.User, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return nil, apperrors.Unauthorized("INVALID_TOKEN", "Token invalide ou expiré")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewPatientsService(&stubRepo{patients: map[int64]dto.Patient{}}, silentNotifier{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	stack := authMiddleware.NewAuthMiddlewareStack(tokenAuthenticator{
		"pharm": {ID: 2, Role: identity.RolePharmacist, IsActive: true},
		"prep":  {ID: 3, Role: identity.RolePreparateur, IsActive: true},
	})

	r := gin.New()
	RegisterPatientsRoutes(r, controllers.NewPatientsController(svc), stack)
	return r
}

func send(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePatientReportsMissingFields(t *testing.T) {
	r := newRouter()

	w := send(r, http.MethodPost, "/api/v1/patients", "pharm", `{"name":"Jean Martin"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body struct {
		Details struct {
			Code   string            `json:"code"`
			Champs map[string]string `json:"champs"`
		} `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Details.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %s", body.Details.Code)
	}
	for _, field := range []string{"age", "gender", "weight", "phoneNumber", "grade"} {
		if _, ok := body.Details.Champs[field]; !ok {
			t.Fatalf("missing field %s not reported: %v", field, body.Details.Champs)
		}
	}
	if _, ok := body.Details.Champs["name"]; ok {
		t.Fatal("name was provided")
	}
}

func TestPatientRoutes(t *testing.T) {
	r := newRouter()

	if w := send(r, http.MethodGet, "/api/v1/patients", "prep", ""); w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"data":[]`)) {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}

	payload := `{"name":"Jean Martin","age":0,"gender":"M","weight":3.4,"phoneNumber":"0600000000","grade":"Civil","preparations":[{"dci":"Ibuprofène"}]}`
	if w := send(r, http.MethodPost, "/api/v1/patients", "prep", payload); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for preparateur, got %d", w.Code)
	}
	if w := send(r, http.MethodPost, "/api/v1/patients", "pharm", payload); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}

	if w := send(r, http.MethodPut, "/api/v1/patients/1", "pharm", `{"grade":"Militaire"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := send(r, http.MethodPut, "/api/v1/patients/9", "pharm", `{"grade":"Militaire"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := send(r, http.MethodDelete, "/api/v1/patients/1", "pharm", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := send(r, http.MethodGet, "/api/v1/patients/1", "prep", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}
