package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/roomly/internal/domain"
)

type commentRepository struct {
	comments map[string]domain.Comment // ID -> Comment
	mu       *sync.RWMutex
}

func NewCommentRepository() domain.CommentRepository {
	return &commentRepository{
		comments: make(map[string]domain.Comment),
		mu:       &sync.RWMutex{},
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment == nil {
		return domain.ErrInvalidInput
	}

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, exists := r.comments[id]
	if !exists {
		return nil, domain.ErrCommentNotFound
	}

	return &comment, nil
}

func (r *commentRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]domain.Comment, 0, len(ids))
	for _, id := range ids {
		if comment, exists := r.comments[id]; exists {
			comments = append(comments, comment)
		}
	}

	return comments, nil
}
