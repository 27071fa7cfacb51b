package reservation_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/reservations"
	"concert-ticketing/internal/tickets/qr"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Reservations *reservations.Service
	Passes       *qr.PassGenerator
	Logger       *logger.Logger
}

func NewHandler(reservationService *reservations.Service, passes *qr.PassGenerator, log *logger.Logger) *Handler {
	return &Handler{Reservations: reservationService, Passes: passes, Logger: log}
}

// Reserve holds one seat on the concert for the caller. Any negative
// outcome (missing concert, sold out) maps to a single 400.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	user, concertID, ok := h.callerAndConcert(w, r)
	if !ok {
		return
	}

	concert, err := h.Reservations.ReserveSeats(concertID, user.ID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Reserve: user %d, concert %d: %v", user.ID, concertID, err))
		http.Error(w, "Failed to reserve seat", http.StatusInternalServerError)
		return
	}
	if concert == nil {
		http.Error(w, "Unable to reserve seat for this concert", http.StatusBadRequest)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("Reserve: user %d reserved a seat for concert %d", user.ID, concertID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(concert)
}

// Unreserve releases the caller's hold on the concert.
func (h *Handler) Unreserve(w http.ResponseWriter, r *http.Request) {
	user, concertID, ok := h.callerAndConcert(w, r)
	if !ok {
		return
	}

	concert, err := h.Reservations.UnreserveSeats(concertID, user.ID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Unreserve: user %d, concert %d: %v", user.ID, concertID, err))
		http.Error(w, "Failed to cancel reservation", http.StatusInternalServerError)
		return
	}
	if concert == nil {
		http.Error(w, "Unable to cancel reservation for this concert", http.StatusBadRequest)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("Unreserve: user %d released a seat for concert %d", user.ID, concertID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(concert)
}

func (h *Handler) MyReservations(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	reservationList, err := h.Reservations.FindByUserID(user.ID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("MyReservations: user %d: %v", user.ID, err))
		http.Error(w, "Failed to retrieve reservations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reservationList)
}

// Pass serves the caller's reservation for a concert as an encrypted
// QR code PNG.
func (h *Handler) Pass(w http.ResponseWriter, r *http.Request) {
	user, concertID, ok := h.callerAndConcert(w, r)
	if !ok {
		return
	}

	reservation, err := h.Reservations.FindByUserAndConcert(user.ID, concertID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Pass: user %d, concert %d: %v", user.ID, concertID, err))
		http.Error(w, "Failed to retrieve reservation", http.StatusInternalServerError)
		return
	}
	if reservation == nil {
		http.Error(w, "No reservation found for this concert", http.StatusNotFound)
		return
	}

	png, err := h.Passes.GenerateEncryptedPass(*reservation)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Pass: failed to generate pass: %v", err))
		http.Error(w, "Failed to generate pass", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) callerAndConcert(w http.ResponseWriter, r *http.Request) (*models.User, int, bool) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return nil, 0, false
	}

	concertID, err := strconv.Atoi(chi.URLParam(r, "concertId"))
	if err != nil {
		http.Error(w, "Invalid concert id", http.StatusBadRequest)
		return nil, 0, false
	}
	return user, concertID, true
}
