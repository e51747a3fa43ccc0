// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Robinson7070/alx-polly/cliparse"
	"github.com/Robinson7070/alx-polly/middleware"
	"github.com/Robinson7070/alx-polly/models"
	"github.com/Robinson7070/alx-polly/store"
)

const maxNameLength = 50

type UserHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewUserHandler(st store.Store, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: st, cfg: cfg}
}

// Register handles POST /users
// Creates an account and returns its bearer token. The token is not shown again.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(name) > maxNameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be at most 50 characters")
		return
	}

	user, err := h.store.CreateUser(r.Context(), name)
	if err != nil {
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID: user.ID,
		Name:   user.Name,
		Token:  user.Token,
	})
}

// Me handles GET /me
// Returns the signed-in viewer, or null for anonymous requests.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.store)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if user == nil {
		middleware.JSONResponse(w, http.StatusOK, nil)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user.Viewer())
}

// MyPolls handles GET /me/polls
// Returns the polls owned by the signed-in user, newest first.
func (h *UserHandler) MyPolls(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.store)
	if !ok {
		return
	}

	polls, err := h.store.ListPolls(r.Context())
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	owned := []models.Poll{}
	for _, p := range polls {
		if p.OwnerID == user.ID {
			owned = append(owned, p)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, owned)
}

// currentUser resolves the bearer token on r. It returns nil, nil when the
// request carries no token or an unknown one.
func currentUser(r *http.Request, st store.Store) (*models.User, error) {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil, nil
	}
	return st.UserByToken(r.Context(), token)
}

// requireUser is currentUser for endpoints that need a signed-in caller. It
// writes the error response itself and reports whether to continue.
func requireUser(w http.ResponseWriter, r *http.Request, st store.Store) (*models.User, bool) {
	user, err := currentUser(r, st)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	if user == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return nil, false
	}
	return user, true
}
