package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
)

var (
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type Service struct {
	users  domain.UserRepository
	tokens TokenIssuer
	logger logging.Logger
}

func NewService(users domain.UserRepository, tokens TokenIssuer, logger logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a basic user and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, displayName string) (*domain.User, string, error) {
	user, err := domain.NewUser(displayName, domain.RoleBasic)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidDisplayName, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", classify(err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info(logging.General, logging.Authentication, "user registered", map[logging.ExtraKey]any{
		logging.UserID: user.ID,
	})

	return user, token, nil
}

// Login issues a token for an existing user. There are no passwords.
func (s *Service) Login(ctx context.Context, displayName string) (*domain.User, string, error) {
	user, err := s.users.GetByDisplayName(ctx, normalize(displayName))
	if err != nil {
		return nil, "", classify(err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}

	return user, nil
}

// EnsureModerator returns the moderator named displayName, creating it on
// first start. An existing basic user of that name is left untouched and
// reported as an error.
func (s *Service) EnsureModerator(ctx context.Context, displayName string) (*domain.User, error) {
	existing, err := s.users.GetByDisplayName(ctx, normalize(displayName))
	switch {
	case err == nil:
		if !existing.IsModerator() {
			return nil, fmt.Errorf("user %q exists and is not a moderator", existing.DisplayName)
		}
		return existing, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, classify(err)
	}

	user, err := domain.NewUser(displayName, domain.RoleModerator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDisplayName, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, classify(err)
	}

	s.logger.Info(logging.General, logging.Startup, "bootstrap moderator created", map[logging.ExtraKey]any{
		logging.UserID: user.ID,
	})

	return user, nil
}

func normalize(displayName string) string {
	return strings.ToLower(strings.TrimSpace(displayName))
}

func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrDisplayNameTaken):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
