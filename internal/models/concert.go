package models

type Concert struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Seat          int    `json:"seat"`
	ReservedSeat  int    `json:"reservedSeat"`
	CancelledSeat int    `json:"cancelledSeat"`
}

// AvailableSeats is the number of seats still open for reservation.
func (c *Concert) AvailableSeats() int {
	return c.Seat - c.ReservedSeat
}

type CreateConcertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Seat        int    `json:"seat"`
}

// ConcertWithStatus is a Concert joined with whether a given user
// holds an active reservation for it.
type ConcertWithStatus struct {
	Concert
	IsReserved bool `json:"isReserved"`
}
