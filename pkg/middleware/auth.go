package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/pkg/apiErrors"
)

// PublicPaths não exigem token
var PublicPaths = map[string]bool{
	"/healthcheck": true,
}

// AdminTokenMiddleware exige "Authorization: Bearer <token>" nas rotas administrativas.
// Token vazio desliga a verificação.
func AdminTokenMiddleware(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" || PublicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "bearer token is required", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(tokenString), []byte(adminToken)) != 1 {
				logrus.WithField("path", r.URL.Path).Warn("http: invalid admin token")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "invalid token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
