package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/roomly/internal/infrastructure/validate"
)

type Role string

const (
	RoleBasic     Role = "basic"
	RoleModerator Role = "moderator"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDisplayNameTaken = errors.New("display name already taken")
	ErrInvalidInput     = errors.New("invalid input")
)

type User struct {
	ID          string    `bson:"_id" json:"id"`
	DisplayName string    `bson:"display_name" json:"displayName"`
	Role        Role      `bson:"role" json:"role"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*User, error)
}

var validateDisplayName = validate.Field("displayName",
	validate.Required(),
	validate.MinLength(2),
	validate.MaxLength(32),
	validate.NoSpaces(),
	// Allow letters, numbers, underscore, hyphen
	validate.Matches(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`,
		"display name can only contain letters, numbers, underscores, and hyphens (cannot start/end with _ or -)"),
)

func NewUser(rawName string, role Role) (*User, error) {
	if err := validateDisplayName(strings.TrimSpace(rawName)); err != nil {
		return nil, err
	}

	if role == "" {
		role = RoleBasic
	}

	return &User{
		ID:          uuid.NewString(),
		DisplayName: strings.ToLower(strings.TrimSpace(rawName)),
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (u *User) IsModerator() bool {
	return u != nil && u.Role == RoleModerator
}
