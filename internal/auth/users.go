// server/internal/auth/users.go
package auth

import (
	"fmt"
	"strings"
	"sync"

	"pharma-alert-api-server/internal/models"
)

// UserStore holds API accounts in memory for the process run.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by lowercase email
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

func (s *UserStore) Add(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.users[key]; exists {
		return fmt.Errorf("user %s already exists", u.Email)
	}
	s.users[key] = u
	return nil
}

func (s *UserStore) FindByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	return u, ok
}
