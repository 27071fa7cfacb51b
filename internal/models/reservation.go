package models

import "time"

type Reservation struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ConcertID int       `json:"concertId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReservationWithConcert is a Reservation joined with its concert.
// Concert is nil when the referenced concert has been deleted.
type ReservationWithConcert struct {
	Reservation
	Concert *Concert `json:"concert"`
}

// ReservationEvent is the payload streamed to Kafka when a seat is
// reserved or a reservation is cancelled.
type ReservationEvent struct {
	EventID   string    `json:"event_id"`
	UserID    int       `json:"user_id"`
	ConcertID int       `json:"concert_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
