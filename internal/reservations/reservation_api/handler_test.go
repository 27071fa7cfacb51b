package reservation_api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/concerts"
	"concert-ticketing/internal/histories"
	"concert-ticketing/internal/kafka"
	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/reservations"
	"concert-ticketing/internal/reservations/reservation_api"
	"concert-ticketing/internal/store"
	"concert-ticketing/internal/tickets/qr"
	"concert-ticketing/internal/users"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func newTestRouter(t *testing.T, seeded []models.Concert) (*chi.Mux, *store.MemStore) {
	t.Helper()

	st := store.NewMemStore()
	require.NoError(t, st.Write(store.Concerts, seeded))
	require.NoError(t, st.Write(store.Users, []models.User{
		{ID: 1, Name: "Admin Account", Role: models.RoleAdmin},
		{ID: 2, Name: "User Account", Role: models.RoleUser},
	}))

	locks := store.NewKeyedLock()
	nop := logger.NewNop()
	userService := users.NewService(st)
	concertService := concerts.NewService(st, locks, reservations.NewQuery(st))
	historyService := histories.NewService(st, locks, userService, concertService)
	reservationService := reservations.NewService(st, locks, concertService, historyService, kafka.NewMockProducer(nop), nop)
	handler := reservation_api.NewHandler(reservationService, qr.NewPassGenerator("test-secret"), nop)

	authRequired := auth.Middleware(userService, nil)

	r := chi.NewRouter()
	r.Route("/reservations", func(r chi.Router) {
		r.Use(authRequired)
		r.Get("/my-reservations", handler.MyReservations)
		r.Get("/{concertId}/pass", handler.Pass)
		r.Patch("/{concertId}/reserve", handler.Reserve)
		r.Patch("/{concertId}/unreserve", handler.Unreserve)
	})
	return r, st
}

func do(t *testing.T, r http.Handler, method, target, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		req.Header.Set("user-id", userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestReserveSeat(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Rock Night", Seat: 5}})

	rec := do(t, r, http.MethodPatch, "/reservations/1/reserve", "2")
	require.Equal(t, http.StatusOK, rec.Code)

	var concert models.Concert
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&concert))
	assert.Equal(t, 1, concert.ReservedSeat)
}

func TestReserveMissingConcert(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPatch, "/reservations/42/reserve", "2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReserveSoldOutConcert(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Tiny Venue", Seat: 1, ReservedSeat: 1}})

	rec := do(t, r, http.MethodPatch, "/reservations/1/reserve", "2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReserveRequiresIdentity(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Rock Night", Seat: 5}})

	rec := do(t, r, http.MethodPatch, "/reservations/1/reserve", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReserveInvalidConcertID(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPatch, "/reservations/abc/reserve", "2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnreserveSeat(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Rock Night", Seat: 5}})

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPatch, "/reservations/1/reserve", "2").Code)

	rec := do(t, r, http.MethodPatch, "/reservations/1/unreserve", "2")
	require.Equal(t, http.StatusOK, rec.Code)

	var concert models.Concert
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&concert))
	assert.Equal(t, 0, concert.ReservedSeat)
	assert.Equal(t, 1, concert.CancelledSeat)
}

func TestUnreserveWithoutReservation(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Rock Night", Seat: 5}})

	rec := do(t, r, http.MethodPatch, "/reservations/1/unreserve", "2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyReservations(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{
		{ID: 1, Name: "Rock Night", Seat: 5},
		{ID: 2, Name: "Jazz Evening", Seat: 5},
	})

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPatch, "/reservations/2/reserve", "2").Code)

	rec := do(t, r, http.MethodGet, "/reservations/my-reservations", "2")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.ReservationWithConcert
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ConcertID)
	require.NotNil(t, got[0].Concert)
	assert.Equal(t, "Jazz Evening", got[0].Concert.Name)
}

func TestMyReservationsEmpty(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/reservations/my-reservations", "2")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.ReservationWithConcert
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Empty(t, got)
}

func TestPassReturnsPNG(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Rock Night", Seat: 5}})

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPatch, "/reservations/1/reserve", "2").Code)

	rec := do(t, r, http.MethodGet, "/reservations/1/pass", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	body := rec.Body.Bytes()
	require.Greater(t, len(body), 4)
	assert.Equal(t, pngMagic, body[:4])
}

func TestPassWithoutReservation(t *testing.T) {
	r, _ := newTestRouter(t, []models.Concert{{ID: 1, Name: "Rock Night", Seat: 5}})

	rec := do(t, r, http.MethodGet, "/reservations/1/pass", "2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
