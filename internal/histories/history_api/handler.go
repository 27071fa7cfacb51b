package history_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/histories"
	"concert-ticketing/internal/logger"
)

type Handler struct {
	Histories *histories.Service
	Logger    *logger.Logger
}

func NewHandler(historyService *histories.Service, log *logger.Logger) *Handler {
	return &Handler{Histories: historyService, Logger: log}
}

// FindAll returns the full enriched audit trail. Admin only (routing
// applies the guard).
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	views, err := h.Histories.FindAll()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("FindAll: failed to read histories: %v", err))
		http.Error(w, "Failed to retrieve histories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

func (h *Handler) MyHistories(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	views, err := h.Histories.FindByUserID(user.ID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("MyHistories: user %d: %v", user.ID, err))
		http.Error(w, "Failed to retrieve histories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}
