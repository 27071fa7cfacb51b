package user_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/users"
)

type Handler struct {
	Users  *users.Service
	Logger *logger.Logger
}

func NewHandler(userService *users.Service, log *logger.Logger) *Handler {
	return &Handler{Users: userService, Logger: log}
}

// GetUserAccount returns the first seeded account with role "user".
// Demo convenience: lets a client discover a valid user-id header.
func (h *Handler) GetUserAccount(w http.ResponseWriter, r *http.Request) {
	h.account(w, h.Users.GetUser)
}

// GetAdminAccount returns the first seeded account with role "admin".
func (h *Handler) GetAdminAccount(w http.ResponseWriter, r *http.Request) {
	h.account(w, h.Users.GetAdmin)
}

func (h *Handler) account(w http.ResponseWriter, lookup func() (*models.User, error)) {
	user, err := lookup()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("account lookup failed: %v", err))
		http.Error(w, "Failed to retrieve account", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "No such account", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
