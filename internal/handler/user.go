package handler

import (
	"net/http"

	"github.com/msomdec/inkwell/internal/service"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleProfile returns the current user.
// GET /users/profile
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	user, err := h.users.Profile(r.Context(), id.ID)
	if err != nil {
		writeServiceError(w, r, "get profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleUpdateProfile changes the current user's email and/or password.
// PUT /users/profile
// Request: {"email":"...","password":"..."} (both optional)
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		Email    *string `json:"email" validate:"omitempty,max=254"`
		Password *string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validateRequest(req); err != nil {
		writeServiceError(w, r, "update profile", err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), id.ID, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}
