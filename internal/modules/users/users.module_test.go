package users

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/modules/users/controllers"
	"pharma-prep-core/internal/modules/users/dto"
	"pharma-prep-core/internal/modules/users/services"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
	authMiddleware "pharma-prep-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
)

type memoryRepo struct {
	users map[int64]dto.User
}

func (m *memoryRepo) Create(_ context.Context, u *dto.User) (*dto.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, dto.ErrDuplicateEmail
		}
	}
	created := *u
	created.ID = int64(len(m.users) + 10)
	created.IsActive = true
	m.users[created.ID] = created
	return &created, nil
}

func (m *memoryRepo) List(context.Context) ([]dto.User, error) {
	out := []dto.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*dto.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memoryRepo) Update(_ context.Context, u *dto.User) (*dto.User, error) {
	m.users[u.ID] = *u
	return u, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.users[id]
	delete(m.users, id)
	return ok, nil
}

func (m *memoryRepo) Count(context.Context) (int64, error) { return int64(len(m.users)), nil }

type tokenAuthenticator map[string]*identity.User

func (a tokenAuthenticator) Authenticate(_ context.Context, token string) (*identity.User, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return nil, apperrors.Unauthorized("INVALID_TOKEN", "Token invalide ou expiré")
}

func newRouter(repo *memoryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{BcryptCost: 4}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewUsersService(cfg, repo, logger)

	stack := authMiddleware.NewAuthMiddlewareStack(tokenAuthenticator{
		"admin": {ID: 1, Email: "admin@hopital.fr", Role: identity.RoleAdmin, IsActive: true},
		"pharm": {ID: 2, Email: "pharm@hopital.fr", Role: identity.RolePharmacist, IsActive: true},
	})

	r := gin.New()
	RegisterUsersRoutes(r, controllers.NewUsersController(svc), stack)
	return r
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserRoutesAreAdminOnly(t *testing.T) {
	r := newRouter(&memoryRepo{users: map[int64]dto.User{}})

	if w := do(r, http.MethodGet, "/api/v1/users", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/v1/users/5", "pharm", nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/v1/users", "admin", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateUserValidationAndPasswordHidden(t *testing.T) {
	r := newRouter(&memoryRepo{users: map[int64]dto.User{}})

	w := do(r, http.MethodPost, "/api/v1/users", "admin", map[string]string{"email": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var errBody struct {
		Details struct {
			Code   string            `json:"code"`
			Champs map[string]string `json:"champs"`
		} `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &errBody)
	if errBody.Details.Code != "VALIDATION_ERROR" || errBody.Details.Champs["password"] == "" || errBody.Details.Champs["role"] == "" {
		t.Fatalf("unexpected validation body: %s", w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/v1/users", "admin", map[string]string{
		"email": "prep@hopital.fr", "password": "motdepasse", "name": "Prep", "role": "preparateur",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("password must never be serialized: %s", w.Body.String())
	}
}

func TestGetUserInvalidAndUnknownID(t *testing.T) {
	r := newRouter(&memoryRepo{users: map[int64]dto.User{}})

	if w := do(r, http.MethodGet, "/api/v1/users/abc", "admin", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/v1/users/77", "admin", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
