package util

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/core/model"
	"storefront/internal/core/service"
)

type contextKey string

const (
	claimsKey      contextKey = "claims"
	sessionUserKey contextKey = "session_user"
)

// WithClaims stores verified access-token claims on the request context.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetUserClaims returns the verified access-token claims placed on the
// request by the auth middleware.
func GetUserClaims(r *http.Request) (*service.Claims, error) {
	claims, ok := r.Context().Value(claimsKey).(*service.Claims)
	if !ok || claims == nil {
		return nil, errors.New("no authenticated user in request context")
	}
	return claims, nil
}

// WithSessionUser stores the session-verified user on the request
// context.
func WithSessionUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, sessionUserKey, user)
}

// GetSessionUser returns the user placed on the request by the
// refresh-session middleware.
func GetSessionUser(r *http.Request) (*model.User, error) {
	user, ok := r.Context().Value(sessionUserKey).(*model.User)
	if !ok || user == nil {
		return nil, errors.New("no session user in request context")
	}
	return user, nil
}

// CanManageCatalog is the capability check for catalog writes. Roles are
// an attribute of the user, never an identity comparison.
func CanManageCatalog(claims *service.Claims) bool {
	return claims.Admin
}
