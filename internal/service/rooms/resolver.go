package rooms

import (
	"context"

	"github.com/hilthontt/roomly/internal/domain"
)

// Resolver turns the identifiers stored on a room into documents. Missing
// documents are not errors: an unknown user resolves to nil and an unknown
// comment is skipped.
type Resolver struct {
	comments domain.CommentRepository
	users    domain.UserRepository
}

func NewResolver(comments domain.CommentRepository, users domain.UserRepository) *Resolver {
	return &Resolver{
		comments: comments,
		users:    users,
	}
}

func (r *Resolver) Resolve(ctx context.Context, room *domain.Room) (*domain.User, []ResolvedComment, error) {
	comments, err := r.comments.GetByIDs(ctx, room.CommentIDs)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]domain.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	userIDs := make([]string, 0, len(comments)+1)
	seen := make(map[string]struct{})
	addUser := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		userIDs = append(userIDs, id)
	}

	addUser(room.OwnerID)
	for _, c := range comments {
		addUser(c.AuthorID)
	}

	users, err := r.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, nil, err
	}

	usersByID := make(map[string]*domain.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}

	resolved := make([]ResolvedComment, 0, len(room.CommentIDs))
	for _, id := range room.CommentIDs {
		c, ok := byID[id]
		if !ok {
			continue
		}
		resolved = append(resolved, ResolvedComment{
			Comment: c,
			Author:  usersByID[c.AuthorID],
		})
	}

	return usersByID[room.OwnerID], resolved, nil
}
