package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/api/util"
	"storefront/internal/core/model"
	"storefront/internal/core/service"
)

type UserHandler struct {
	userService    service.UserService
	sessionService service.SessionService
}

func NewUserHandler(userService service.UserService, sessionService service.SessionService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		sessionService: sessionService,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates the user and opens a first session. Both tokens travel
// in response headers; the body is the user document with password and
// sessions omitted. Any failure is a 400 on this route.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	h.respondWithTokens(w, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		return
	}

	h.respondWithTokens(w, user)
}

// respondWithTokens opens a session (refresh token first, so a failed
// persist never leaks a usable token) and attaches both credentials as
// headers.
func (h *UserHandler) respondWithTokens(w http.ResponseWriter, user *model.User) {
	refreshToken, err := h.sessionService.IssueRefreshToken(user)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	accessToken, err := h.sessionService.IssueAccessToken(user)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	w.Header().Set("x-refresh-token", refreshToken)
	w.Header().Set("x-access-token", accessToken)
	writeJSON(w, http.StatusOK, user)
}

// AccessToken mints a fresh access token for a session-verified caller.
// The session middleware has already placed the user on the context.
func (h *UserHandler) AccessToken(w http.ResponseWriter, r *http.Request) {
	user, err := util.GetSessionUser(r)
	if err != nil {
		http.Error(w, "Session verification required", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.sessionService.IssueAccessToken(user)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	w.Header().Set("x-access-token", accessToken)
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Delete removes a user account. Callers may only delete themselves.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := util.GetUserClaims(r)
	if err != nil {
		http.Error(w, "Invalid authorization token", http.StatusUnauthorized)
		return
	}

	id := pathID(r.URL.Path, "/users")
	if id == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
		return
	}

	user, err := h.userService.DeleteUser(claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
