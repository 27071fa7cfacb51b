package reservations

import (
	"fmt"
	"time"

	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/store"
)

// ConcertCatalog is what the workflow needs from the concert side:
// the guarded seat-counter mutations and a plain lookup for joins.
type ConcertCatalog interface {
	FindOne(id int) (*models.Concert, error)
	IncrementReservedSeat(concertID int) (*models.Concert, error)
	DecrementReservedSeat(concertID int) (*models.Concert, error)
}

// HistoryWriter appends audit entries for completed actions.
type HistoryWriter interface {
	Create(userID, concertID int, action string) (*models.History, error)
}

// EventPublisher streams reservation lifecycle events. Publishing is
// best effort: failures are logged, never surfaced to the caller.
type EventPublisher interface {
	PublishReservationCreated(event models.ReservationEvent) error
	PublishReservationCancelled(event models.ReservationEvent) error
}

// Service orchestrates the seat counter and the reservation records.
// The two live in separate collections with no multi-record
// transaction primitive underneath, so ReserveSeats/UnreserveSeats run
// as a saga with a compensating re-insert on the unreserve path.
type Service struct {
	Store     store.Store
	Locks     *store.KeyedLock
	Concerts  ConcertCatalog
	Histories HistoryWriter
	Events    EventPublisher
	Logger    *logger.Logger
}

func NewService(st store.Store, locks *store.KeyedLock, concerts ConcertCatalog, histories HistoryWriter, events EventPublisher, log *logger.Logger) *Service {
	return &Service{
		Store:     st,
		Locks:     locks,
		Concerts:  concerts,
		Histories: histories,
		Events:    events,
		Logger:    log,
	}
}

// Create persists a new reservation record with a sequential id.
func (s *Service) Create(userID, concertID int) (*models.Reservation, error) {
	unlock := s.Locks.Lock(store.Reservations)
	defer unlock()

	var reservations []models.Reservation
	if err := s.Store.Read(store.Reservations, &reservations); err != nil {
		return nil, err
	}

	reservation := models.Reservation{
		ID:        nextID(reservations),
		UserID:    userID,
		ConcertID: concertID,
		CreatedAt: time.Now(),
	}
	reservations = append(reservations, reservation)

	if err := s.Store.Write(store.Reservations, reservations); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// RemoveByUserAndConcert removes the user's reservation for the
// concert, reporting whether one existed.
func (s *Service) RemoveByUserAndConcert(userID, concertID int) (bool, error) {
	unlock := s.Locks.Lock(store.Reservations)
	defer unlock()

	var reservations []models.Reservation
	if err := s.Store.Read(store.Reservations, &reservations); err != nil {
		return false, err
	}

	index := -1
	for i := range reservations {
		if reservations[i].UserID == userID && reservations[i].ConcertID == concertID {
			index = i
			break
		}
	}
	if index == -1 {
		return false, nil
	}

	reservations = append(reservations[:index], reservations[index+1:]...)
	if err := s.Store.Write(store.Reservations, reservations); err != nil {
		return false, err
	}
	return true, nil
}

// FindByUserID returns the user's reservations, each joined with its
// concert. Concert is nil when the concert has since been deleted.
func (s *Service) FindByUserID(userID int) ([]models.ReservationWithConcert, error) {
	var reservations []models.Reservation
	if err := s.Store.Read(store.Reservations, &reservations); err != nil {
		return nil, err
	}

	result := []models.ReservationWithConcert{}
	for _, r := range reservations {
		if r.UserID != userID {
			continue
		}
		concert, err := s.Concerts.FindOne(r.ConcertID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.ReservationWithConcert{
			Reservation: r,
			Concert:     concert,
		})
	}
	return result, nil
}

// FindByUserAndConcert returns the user's reservation for the concert,
// or nil when none is held.
func (s *Service) FindByUserAndConcert(userID, concertID int) (*models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.Store.Read(store.Reservations, &reservations); err != nil {
		return nil, err
	}
	for i := range reservations {
		if reservations[i].UserID == userID && reservations[i].ConcertID == concertID {
			return &reservations[i], nil
		}
	}
	return nil, nil
}

// ReserveSeats holds one seat for the user: bump the seat counter,
// persist the reservation record, append the audit entry. A nil
// concert from the counter (missing concert or sold out) aborts the
// whole operation before anything is written.
//
// The record/history writes after a successful increment are not
// rolled back on storage faults; those are treated as fatal, not as
// business outcomes.
func (s *Service) ReserveSeats(concertID, userID int) (*models.Concert, error) {
	updated, err := s.Concerts.IncrementReservedSeat(concertID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	if _, err := s.Create(userID, concertID); err != nil {
		return nil, err
	}
	if _, err := s.Histories.Create(userID, concertID, models.ActionReserve); err != nil {
		return nil, err
	}

	s.publish(models.ActionReserve, userID, concertID)
	return updated, nil
}

// UnreserveSeats releases the user's hold: drop the reservation
// record, then decrement the seat counter. When the decrement fails
// (concert deleted, or the counter already at zero) the removed record
// is re-created so the user keeps the seat hold, and the call reports
// "did not apply". The compensating record gets a fresh id, which is
// fine because lookups key on (userID, concertID).
func (s *Service) UnreserveSeats(concertID, userID int) (*models.Concert, error) {
	removed, err := s.RemoveByUserAndConcert(userID, concertID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, nil
	}

	updated, err := s.Concerts.DecrementReservedSeat(concertID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		if _, err := s.Create(userID, concertID); err != nil {
			return nil, fmt.Errorf("restore reservation after failed unreserve: %w", err)
		}
		return nil, nil
	}

	if _, err := s.Histories.Create(userID, concertID, models.ActionCancel); err != nil {
		return nil, err
	}

	s.publish(models.ActionCancel, userID, concertID)
	return updated, nil
}

func (s *Service) publish(action string, userID, concertID int) {
	event := models.ReservationEvent{
		UserID:    userID,
		ConcertID: concertID,
		Action:    action,
		CreatedAt: time.Now(),
	}

	var err error
	switch action {
	case models.ActionReserve:
		err = s.Events.PublishReservationCreated(event)
	case models.ActionCancel:
		err = s.Events.PublishReservationCancelled(event)
	}
	if err != nil && s.Logger != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish %s event for user %d, concert %d: %v", action, userID, concertID, err))
	}
}

func nextID(reservations []models.Reservation) int {
	max := 0
	for _, r := range reservations {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}
