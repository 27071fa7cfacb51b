package reservations

import (
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/store"
)

// Query answers reservation existence checks straight from the store.
// It is the capability injected into the concert catalog, kept apart
// from the workflow Service so neither side needs the other's type.
type Query struct {
	Store store.Store
}

func NewQuery(st store.Store) *Query {
	return &Query{Store: st}
}

// HasActiveReservation reports whether the user currently holds a
// reservation for the concert.
func (q *Query) HasActiveReservation(userID, concertID int) (bool, error) {
	var reservations []models.Reservation
	if err := q.Store.Read(store.Reservations, &reservations); err != nil {
		return false, err
	}
	for _, r := range reservations {
		if r.UserID == userID && r.ConcertID == concertID {
			return true, nil
		}
	}
	return false, nil
}
