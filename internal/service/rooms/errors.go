package rooms

import (
	"errors"
	"fmt"

	"github.com/hilthontt/roomly/internal/domain"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrPartialFailure   = errors.New("partial failure")
)

// PartialFailureError reports a comment that was stored but could not be
// attached to its room. Err holds the classified cause, so both
// errors.Is(err, ErrPartialFailure) and errors.Is(err, ErrNotFound) (or
// ErrStoreUnavailable) hold.
type PartialFailureError struct {
	RoomID    string
	CommentID string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("comment %s created but not attached to room %s: %v", e.CommentID, e.RoomID, e.Err)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{ErrPartialFailure, e.Err}
}

// classify maps repository errors onto the service taxonomy while keeping
// the original error reachable through errors.Is/As. Anything that is not a
// missing document, timeouts included, is a store failure.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrStoreUnavailable):
		return err
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
