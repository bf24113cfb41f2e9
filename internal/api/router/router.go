package router

import (
	"encoding/json"
	"net/http"

	"storefront/internal/api/handler"
	"storefront/internal/api/middleware"
	"storefront/internal/core/service"
)

func NewRouter(
	userService service.UserService,
	sessionService service.SessionService,
	productService service.ProductService,
	orderService service.OrderService,
) http.Handler {
	// Initialize handlers
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService, sessionService)
	orderHandler := handler.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(sessionService)
	sessionMiddleware := middleware.NewSessionMiddleware(sessionService)

	// Create router
	mux := http.NewServeMux()

	// Middleware chains. CORS sits outermost so preflight requests are
	// answered before authentication runs.
	public := func(h http.Handler) http.Handler {
		return middleware.CORSMiddleware(
			middleware.LoggingMiddleware(h),
		)
	}
	protected := func(h http.Handler) http.Handler {
		return public(authMiddleware.Authenticate(h))
	}
	sessionVerified := func(h http.Handler) http.Handler {
		return public(sessionMiddleware.VerifySession(h))
	}

	// Health check endpoint
	mux.Handle("/health", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	})))

	// Catalog routes
	mux.Handle("/read", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		productHandler.Read(w, r)
	})))

	mux.Handle("/create", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		productHandler.Create(w, r)
	})))

	mux.Handle("/update/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		productHandler.Update(w, r)
	})))

	// /delete with no id empties the whole catalog; both forms are
	// admin-gated in the handler.
	deleteProducts := protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		productHandler.Delete(w, r)
	}))
	mux.Handle("/delete", deleteProducts)
	mux.Handle("/delete/", deleteProducts)

	// User routes
	mux.Handle("/users", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		userHandler.Signup(w, r)
	})))

	mux.Handle("/users/login", public(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		userHandler.Login(w, r)
	})))

	mux.Handle("/users/me/access-token", sessionVerified(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		userHandler.AccessToken(w, r)
	})))

	mux.Handle("/users/", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		userHandler.Delete(w, r)
	})))

	// Order routes
	mux.Handle("/orders", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			orderHandler.Create(w, r)
		case http.MethodGet:
			orderHandler.List(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	return mux
}
