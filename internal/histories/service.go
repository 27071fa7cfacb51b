package histories

import (
	"time"

	"concert-ticketing/internal/models"
	"concert-ticketing/internal/store"
)

const (
	unknownUser    = "Unknown User"
	unknownConcert = "Unknown Concert"
)

// UserDirectory resolves user display names at read time.
type UserDirectory interface {
	FindOne(id int) (*models.User, error)
}

// ConcertCatalog resolves concert display names at read time.
type ConcertCatalog interface {
	FindOne(id int) (*models.Concert, error)
}

// Service is the append-only audit ledger of reserve/cancel actions.
// The reservation workflow only ever appends; Update and Remove exist
// for generic maintenance and are not part of that flow.
type Service struct {
	Store    store.Store
	Locks    *store.KeyedLock
	Users    UserDirectory
	Concerts ConcertCatalog
}

func NewService(st store.Store, locks *store.KeyedLock, users UserDirectory, concerts ConcertCatalog) *Service {
	return &Service{Store: st, Locks: locks, Users: users, Concerts: concerts}
}

func (s *Service) Create(userID, concertID int, action string) (*models.History, error) {
	unlock := s.Locks.Lock(store.Histories)
	defer unlock()

	var histories []models.History
	if err := s.Store.Read(store.Histories, &histories); err != nil {
		return nil, err
	}

	history := models.History{
		ID:        nextID(histories),
		UserID:    userID,
		ConcertID: concertID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	histories = append(histories, history)

	if err := s.Store.Write(store.Histories, histories); err != nil {
		return nil, err
	}
	return &history, nil
}

// FindAll returns every entry in insertion order, enriched with the
// user and concert display names.
func (s *Service) FindAll() ([]models.HistoryView, error) {
	var histories []models.History
	if err := s.Store.Read(store.Histories, &histories); err != nil {
		return nil, err
	}
	return s.enrich(histories)
}

// FindByUserID returns the user's entries, enriched, preserving
// relative order.
func (s *Service) FindByUserID(userID int) ([]models.HistoryView, error) {
	var histories []models.History
	if err := s.Store.Read(store.Histories, &histories); err != nil {
		return nil, err
	}

	matched := []models.History{}
	for _, h := range histories {
		if h.UserID == userID {
			matched = append(matched, h)
		}
	}
	return s.enrich(matched)
}

func (s *Service) FindOne(id int) (*models.History, error) {
	var histories []models.History
	if err := s.Store.Read(store.Histories, &histories); err != nil {
		return nil, err
	}
	for i := range histories {
		if histories[i].ID == id {
			return &histories[i], nil
		}
	}
	return nil, nil
}

// Update patches the action of an existing entry. Ids, references and
// timestamps of an audit row stay immutable.
func (s *Service) Update(id int, action string) (*models.History, error) {
	unlock := s.Locks.Lock(store.Histories)
	defer unlock()

	var histories []models.History
	if err := s.Store.Read(store.Histories, &histories); err != nil {
		return nil, err
	}

	for i := range histories {
		if histories[i].ID != id {
			continue
		}
		histories[i].Action = action
		if err := s.Store.Write(store.Histories, histories); err != nil {
			return nil, err
		}
		updated := histories[i]
		return &updated, nil
	}
	return nil, nil
}

func (s *Service) Remove(id int) (bool, error) {
	unlock := s.Locks.Lock(store.Histories)
	defer unlock()

	var histories []models.History
	if err := s.Store.Read(store.Histories, &histories); err != nil {
		return false, err
	}

	index := -1
	for i := range histories {
		if histories[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false, nil
	}

	histories = append(histories[:index], histories[index+1:]...)
	if err := s.Store.Write(store.Histories, histories); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) enrich(histories []models.History) ([]models.HistoryView, error) {
	views := make([]models.HistoryView, 0, len(histories))
	for _, h := range histories {
		view := models.HistoryView{
			History:     h,
			UserName:    unknownUser,
			ConcertName: unknownConcert,
		}

		user, err := s.Users.FindOne(h.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			view.UserName = user.Name
		}

		concert, err := s.Concerts.FindOne(h.ConcertID)
		if err != nil {
			return nil, err
		}
		if concert != nil {
			view.ConcertName = concert.Name
		}

		views = append(views, view)
	}
	return views, nil
}

func nextID(histories []models.History) int {
	max := 0
	for _, h := range histories {
		if h.ID > max {
			max = h.ID
		}
	}
	return max + 1
}
