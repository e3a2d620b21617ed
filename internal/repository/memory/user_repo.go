// internal/repository/memory/user_repo.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/repository"
)

// userRepository keeps accounts in process memory. Email uniqueness is
// enforced under the same lock as the insert.
type userRepository struct {
	mu    sync.Mutex
	users []domain.User
}

// NewUserRepository creates an empty transient user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
