package service

import (
	"errors"
)

// Failure taxonomy shared by the services. Handlers map these onto HTTP
// statuses with errors.Is; none of them are retried internally.
var (
	ErrValidation        = errors.New("invalid input")
	ErrConflict          = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrSigning           = errors.New("failed to sign access token")
	ErrInvalidToken      = errors.New("invalid or expired access token")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("refresh token has expired")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPartialOrder means the order record was created but the stock
	// adjustment failed and could not be compensated. The two writes are
	// not atomic across collections; this is surfaced, never swallowed.
	ErrPartialOrder = errors.New("order created but stock adjustment failed")
)
