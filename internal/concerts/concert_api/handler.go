package concert_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/concerts"
	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Concerts *concerts.Service
	Logger   *logger.Logger
}

func NewHandler(concertService *concerts.Service, log *logger.Logger) *Handler {
	return &Handler{Concerts: concertService, Logger: log}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConcertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Seat < 0 {
		http.Error(w, "Concert name is required and seat must be non-negative", http.StatusBadRequest)
		return
	}

	concert, err := h.Concerts.Create(req.Name, req.Description, req.Seat)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create: failed to create concert: %v", err))
		http.Error(w, "Failed to create concert", http.StatusInternalServerError)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("Create: concert %d created", concert.ID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(concert)
}

func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	concertList, err := h.Concerts.FindAll()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("FindAll: failed to read concerts: %v", err))
		http.Error(w, "Failed to retrieve concerts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(concertList)
}

func (h *Handler) FindAllWithReservationStatus(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	concertList, err := h.Concerts.FindAllWithReservationStatus(user.ID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("FindAllWithReservationStatus: %v", err))
		http.Error(w, "Failed to retrieve concerts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(concertList)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid concert id", http.StatusBadRequest)
		return
	}

	removed, err := h.Concerts.Remove(id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Remove: failed to remove concert %d: %v", id, err))
		http.Error(w, "Failed to delete concert", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "Concert not found", http.StatusNotFound)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("Remove: concert %d deleted", id))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Concert deleted successfully"})
}
