package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

const AdminRole = "admin"

func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	if secret == "" {
		return nil
	}
	return jwtauth.New("HS256", []byte(secret), nil)
}

// Admin requires a valid bearer token carrying role=admin. A nil ta disables the check.
func Admin(ta *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	if ta == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return chi.Chain(jwtauth.Verifier(ta), admin).Handler(next)
	}
}

func admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if role, _ := claims["role"].(string); role != AdminRole {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
