package users

import (
	"concert-ticketing/internal/models"
	"concert-ticketing/internal/store"
)

// Service is the read-only user directory. Users are seeded in the
// data file; there is no create or update path.
type Service struct {
	Store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{Store: st}
}

func (s *Service) FindAll() ([]models.User, error) {
	var users []models.User
	if err := s.Store.Read(store.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindOne returns nil when no user has the given id.
func (s *Service) FindOne(id int) (*models.User, error) {
	users, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetUsersByRole filters the directory by role, preserving store order.
func (s *Service) GetUsersByRole(role string) ([]models.User, error) {
	users, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	matched := []models.User{}
	for _, u := range users {
		if u.Role == role {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// GetUser returns the first record with role "user", or nil.
func (s *Service) GetUser() (*models.User, error) {
	return s.firstByRole(models.RoleUser)
}

// GetAdmin returns the first record with role "admin", or nil.
func (s *Service) GetAdmin() (*models.User, error) {
	return s.firstByRole(models.RoleAdmin)
}

func (s *Service) firstByRole(role string) (*models.User, error) {
	matched, err := s.GetUsersByRole(role)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, nil
	}
	return &matched[0], nil
}
