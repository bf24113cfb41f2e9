package middleware

import (
	"net/http"
)

// CORSMiddleware answers preflight requests and exposes the auth token
// headers to browser clients.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, x-access-token, x-refresh-token, _id")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH")
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Access-Control-Expose-Headers", "x-access-token, x-refresh-token")
		next.ServeHTTP(w, r)
	})
}
