package middleware

import (
	"net/http"

	"storefront/internal/api/util"
	"storefront/internal/core/service"
)

type SessionMiddleware struct {
	sessionService service.SessionService
}

func NewSessionMiddleware(sessionService service.SessionService) *SessionMiddleware {
	return &SessionMiddleware{
		sessionService: sessionService,
	}
}

// VerifySession checks the x-refresh-token/_id header pair against the
// stored session list and places the matching user on the request
// context. Expired sessions are rejected here; there is no background
// cleanup.
func (m *SessionMiddleware) VerifySession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshToken := r.Header.Get("x-refresh-token")
		userID := r.Header.Get("_id")

		if refreshToken == "" || userID == "" {
			http.Error(w, "Refresh token and user id headers required", http.StatusUnauthorized)
			return
		}

		user, err := m.sessionService.VerifySession(userID, refreshToken)
		if err != nil {
			http.Error(w, "Refresh token has expired or the session is invalid", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(util.WithSessionUser(r.Context(), user)))
	})
}
