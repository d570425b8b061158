package repositories

import (
	"fmt"
	"sync"

	"lumina/internal/models"

	"github.com/google/uuid"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	users   map[string]models.User
	byEmail map[string]string
	mu      sync.RWMutex
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create adds a new user.
func (r *InMemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("user with email %s already exists", user.Email)
	}
	r.users[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByEmail returns a user by their email.
func (r *InMemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	user := r.users[id]
	return &user, nil
}

// GetByID returns a user by their ID.
func (r *InMemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found", id)
	}
	return &user, nil
}
