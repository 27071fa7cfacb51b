package models

import "time"

const (
	ActionReserve = "reserve"
	ActionCancel  = "cancel"
)

type History struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ConcertID int       `json:"concertId"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryView is a History enriched with display names resolved at
// read time. UserName and ConcertName fall back to "Unknown User" /
// "Unknown Concert" when the referenced record no longer exists.
type HistoryView struct {
	History
	UserName    string `json:"userName"`
	ConcertName string `json:"concertName"`
}
