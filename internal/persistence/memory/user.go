package memory

import (
	"context"
	"sync"

	"github.com/hilthontt/roomly/internal/domain"
)

type userRepository struct {
	users     map[string]domain.User // ID -> User
	nameIndex map[string]string      // DisplayName -> ID
	mu        *sync.RWMutex
}

func NewUserRepository() domain.UserRepository {
	return &userRepository{
		users:     make(map[string]domain.User),
		nameIndex: make(map[string]string),
		mu:        &sync.RWMutex{},
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.nameIndex[user.DisplayName]; taken {
		return domain.ErrDisplayNameTaken
	}

	r.users[user.ID] = *user
	r.nameIndex[user.DisplayName] = user.ID
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	return &user, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if user, exists := r.users[id]; exists {
			users = append(users, user)
		}
	}

	return users, nil
}

func (r *userRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.nameIndex[displayName]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	user := r.users[id]
	return &user, nil
}
