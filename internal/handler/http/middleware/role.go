package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/handler/http/response"
)

// RequireReviewer restricts exception and leave dispositions to hr and
// admin roles.
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Reviewer access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Reviewer access required")
			return
		}

		if role != "hr" && role != "admin" {
			response.Forbidden(w, "Reviewer access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin restricts bulk reconciliation to the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Admin access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
