package middleware

import (
	"net/http"

	"storefront/internal/api/util"
	"storefront/internal/core/service"
)

type AuthMiddleware struct {
	sessionService service.SessionService
}

func NewAuthMiddleware(sessionService service.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionService,
	}
}

// Authenticate verifies the x-access-token header and places the
// verified claims on the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("x-access-token")
		if token == "" {
			http.Error(w, "Access token required", http.StatusUnauthorized)
			return
		}

		claims, err := m.sessionService.VerifyAccessToken(token)
		if err != nil {
			http.Error(w, "Invalid or expired access token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(util.WithClaims(r.Context(), claims)))
	})
}
