package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/jwt"
)

func newProtectedRouter(svc jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(svc.JWTAuth()))
		r.Use(AuthRequired(svc.JWTAuth()))

		r.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(EmployeeID(req)))
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/sweep", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})
	return r
}

func TestAuthRequired_AccessToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")

	token, _, err := svc.GenerateAccessToken("emp-1", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newProtectedRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-1", rec.Body.String())
}

func TestAuthRequired_MissingToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	newProtectedRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_WrongTokenType(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")

	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"employee_id": "emp-1",
		"role":        "staff",
		"type":        "refresh",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newProtectedRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_RoleGate(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	router := newProtectedRouter(svc)

	staffToken, _, err := svc.GenerateAccessToken("emp-1", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sweep", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _, err := svc.GenerateAccessToken("emp-2", "admin")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/sweep", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
