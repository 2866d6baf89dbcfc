package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"rapv/site/internal/auth"
	"rapv/site/internal/http/handlers"
	"rapv/site/internal/httpctx"
	"rapv/site/internal/models"
)

// RequireAdmin admits requests carrying a verified admin token, either as a
// bearer header or as the session cookie.
func RequireAdmin(authProvider auth.Provider, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := handlers.RequestToken(r)
			if token == "" {
				jsonError(w, http.StatusUnauthorized, "missing token")
				return
			}

			claims, err := authProvider.Verify(r.Context(), token)
			if err != nil {
				log.Info("token verify failed", zap.String("path", r.URL.Path), zap.Error(err))
				jsonError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if !strings.EqualFold(claims.Role, string(models.RoleAdmin)) {
				log.Info("non-admin token rejected", zap.String("actor", claims.Actor()), zap.String("role", claims.Role))
				jsonError(w, http.StatusForbidden, "admin required")
				return
			}

			next.ServeHTTP(w, r.WithContext(httpctx.WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when the request carries a valid token and
// otherwise passes the request through untouched.
func OptionalAuth(authProvider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := handlers.RequestToken(r); token != "" {
				if claims, err := authProvider.Verify(r.Context(), token); err == nil {
					r = r.WithContext(httpctx.WithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}` + "\n"))
}
