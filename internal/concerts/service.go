package concerts

import (
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/store"
)

// ReservationChecker is the narrow query capability the catalog needs
// from the reservation side. Injecting just this interface breaks the
// catalog <-> workflow dependency cycle.
type ReservationChecker interface {
	HasActiveReservation(userID, concertID int) (bool, error)
}

// Service is the concert catalog: CRUD over concerts plus the guarded
// seat-counter mutations the reservation workflow drives.
//
// Lookup and mutation ops return a nil concert for "not found" and for
// business-rule rejections (no capacity, nothing reserved); a non-nil
// error always means a storage fault.
type Service struct {
	Store        store.Store
	Locks        *store.KeyedLock
	Reservations ReservationChecker
}

func NewService(st store.Store, locks *store.KeyedLock, reservations ReservationChecker) *Service {
	return &Service{Store: st, Locks: locks, Reservations: reservations}
}

func (s *Service) Create(name, description string, seat int) (*models.Concert, error) {
	unlock := s.Locks.Lock(store.Concerts)
	defer unlock()

	var concerts []models.Concert
	if err := s.Store.Read(store.Concerts, &concerts); err != nil {
		return nil, err
	}

	concert := models.Concert{
		ID:            nextID(concerts),
		Name:          name,
		Description:   description,
		Seat:          seat,
		ReservedSeat:  0,
		CancelledSeat: 0,
	}
	concerts = append(concerts, concert)

	if err := s.Store.Write(store.Concerts, concerts); err != nil {
		return nil, err
	}
	return &concert, nil
}

func (s *Service) FindAll() ([]models.Concert, error) {
	var concerts []models.Concert
	if err := s.Store.Read(store.Concerts, &concerts); err != nil {
		return nil, err
	}
	return concerts, nil
}

func (s *Service) FindOne(id int) (*models.Concert, error) {
	concerts, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range concerts {
		if concerts[i].ID == id {
			return &concerts[i], nil
		}
	}
	return nil, nil
}

// Remove reports whether a concert was found and removed. Nothing is
// written when the id is absent.
func (s *Service) Remove(id int) (bool, error) {
	unlock := s.Locks.Lock(store.Concerts)
	defer unlock()

	var concerts []models.Concert
	if err := s.Store.Read(store.Concerts, &concerts); err != nil {
		return false, err
	}

	index := -1
	for i := range concerts {
		if concerts[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false, nil
	}

	concerts = append(concerts[:index], concerts[index+1:]...)
	if err := s.Store.Write(store.Concerts, concerts); err != nil {
		return false, err
	}
	return true, nil
}

// FindAllWithReservationStatus joins every concert with whether the
// given user holds an active reservation for it.
func (s *Service) FindAllWithReservationStatus(userID int) ([]models.ConcertWithStatus, error) {
	concerts, err := s.FindAll()
	if err != nil {
		return nil, err
	}

	result := make([]models.ConcertWithStatus, 0, len(concerts))
	for _, concert := range concerts {
		reserved, err := s.Reservations.HasActiveReservation(userID, concert.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.ConcertWithStatus{
			Concert:    concert,
			IsReserved: reserved,
		})
	}
	return result, nil
}

// IncrementReservedSeat reserves one seat iff capacity remains.
// Returns nil without writing when the concert is missing or full.
func (s *Service) IncrementReservedSeat(concertID int) (*models.Concert, error) {
	return s.mutate(concertID, func(c *models.Concert) bool {
		if c.AvailableSeats() <= 0 {
			return false
		}
		c.ReservedSeat++
		return true
	})
}

// DecrementReservedSeat releases one seat iff any is reserved.
// Returns nil without writing when the concert is missing or has no
// reserved seats.
func (s *Service) DecrementReservedSeat(concertID int) (*models.Concert, error) {
	return s.mutate(concertID, func(c *models.Concert) bool {
		if c.ReservedSeat <= 0 {
			return false
		}
		c.ReservedSeat--
		return true
	})
}

// IncrementCancelledSeat bumps the informational cancellation counter.
func (s *Service) IncrementCancelledSeat(concertID int) (*models.Concert, error) {
	return s.mutate(concertID, func(c *models.Concert) bool {
		c.CancelledSeat++
		return true
	})
}

// mutate runs one guarded read-modify-write cycle under the concerts
// lock. apply reports whether the mutation is allowed; a false return
// leaves the collection untouched.
func (s *Service) mutate(concertID int, apply func(*models.Concert) bool) (*models.Concert, error) {
	unlock := s.Locks.Lock(store.Concerts)
	defer unlock()

	var concerts []models.Concert
	if err := s.Store.Read(store.Concerts, &concerts); err != nil {
		return nil, err
	}

	for i := range concerts {
		if concerts[i].ID != concertID {
			continue
		}
		if !apply(&concerts[i]) {
			return nil, nil
		}
		if err := s.Store.Write(store.Concerts, concerts); err != nil {
			return nil, err
		}
		updated := concerts[i]
		return &updated, nil
	}
	return nil, nil
}

func nextID(concerts []models.Concert) int {
	max := 0
	for _, c := range concerts {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
