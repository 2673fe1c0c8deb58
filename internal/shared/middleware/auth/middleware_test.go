package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"

	"github.com/gin-gonic/gin"
)

type fakeAuthenticator struct {
	users map[string]*identity.User
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*identity.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, apperrors.Unauthorized("INVALID_TOKEN", "Token invalide ou expiré")
	}
	return user, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	stack := NewAuthMiddlewareStack(&fakeAuthenticator{users: map[string]*identity.User{
		"admin-token": {ID: 1, Email: "admin@test.fr", Role: identity.RoleAdmin, IsActive: true},
		"prep-token":  {ID: 2, Email: "prep@test.fr", Role: identity.RolePreparateur, IsActive: true},
		"pharm-token": {ID: 3, Email: "pharm@test.fr", Role: identity.RolePharmacist, IsActive: true},
	}})

	r := gin.New()
	r.GET("/me", Handlers(Protected(stack), func(c *gin.Context) {
		user, _ := identity.FromGin(c)
		ctxUser, _ := identity.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"email": user.Email, "ctx": ctxUser.Email, "user_id": c.GetInt64("user_id")})
	})...)
	r.DELETE("/admin", Handlers(RequireAdmin(stack), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})...)
	r.POST("/pharmacy", Handlers(RequirePharmacy(stack), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})...)
	r.PATCH("/staff", Handlers(RequireStaff(stack), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})...)
	return r
}

func perform(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Details map[string]interface{} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	code, _ := body.Details["code"].(string)
	return code
}

func TestProtectedRequiresToken(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "TOKEN_REQUIRED" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestProtectedRejectsUnknownToken(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/me", "nope")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "INVALID_TOKEN" {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestProtectedInjectsIdentity(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/me", "prep-token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["email"] != "prep@test.fr" || body["ctx"] != "prep@test.fr" {
		t.Fatalf("identity not injected: %v", body)
	}
	if body["user_id"].(float64) != 2 {
		t.Fatalf("unexpected user_id: %v", body["user_id"])
	}
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter()

	w := perform(r, http.MethodDelete, "/admin", "prep-token")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "INSUFFICIENT_ROLE" {
		t.Fatalf("unexpected code %s", code)
	}

	w = perform(r, http.MethodDelete, "/admin", "admin-token")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestRoleGroups(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodPost, "/pharmacy", "admin-token", http.StatusNoContent},
		{http.MethodPost, "/pharmacy", "pharm-token", http.StatusNoContent},
		{http.MethodPost, "/pharmacy", "prep-token", http.StatusForbidden},
		{http.MethodPost, "/pharmacy", "", http.StatusUnauthorized},
		{http.MethodPatch, "/staff", "prep-token", http.StatusNoContent},
		{http.MethodPatch, "/staff", "pharm-token", http.StatusNoContent},
		{http.MethodPatch, "/staff", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if w := perform(r, tc.method, tc.path, tc.token); w.Code != tc.want {
			t.Fatalf("%s %s with %q: expected %d, got %d", tc.method, tc.path, tc.token, tc.want, w.Code)
		}
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"Bearer abc":      "abc",
		"bearer   abc ":   "abc",
		"Basic abc":       "",
		"Bearerabc":       "",
	}
	for header, want := range cases {
		if got := extractBearerToken(header); got != want {
			t.Fatalf("extractBearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}
