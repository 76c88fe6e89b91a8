package utils

import (
	"errors"
	"net/http"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/json"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	roomsService "github.com/hilthontt/roomly/internal/service/rooms"
	usersService "github.com/hilthontt/roomly/internal/service/users"
)

// WriteServiceError maps service errors onto HTTP statuses. Unknown errors
// are logged and reported as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	switch {
	case errors.Is(err, roomsService.ErrUnauthorized):
		json.WriteUnauthorizedError(w, "Authentication required")
	case errors.Is(err, roomsService.ErrForbidden):
		json.WriteForbiddenError(w, "Moderator role required")
	case errors.Is(err, roomsService.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		json.WriteNotFoundError(w, err.Error())
	case errors.Is(err, usersService.ErrInvalidDisplayName),
		errors.Is(err, domain.ErrInvalidInput):
		json.WriteValidationError(w, err)
	case errors.Is(err, domain.ErrDisplayNameTaken):
		json.WriteConflictError(w, err.Error())
	case errors.Is(err, roomsService.ErrStoreUnavailable),
		errors.Is(err, usersService.ErrStoreUnavailable):
		logger.Error(logging.MongoDB, logging.Select, "store unavailable", map[logging.ExtraKey]any{
			logging.Path:         r.URL.Path,
			logging.ErrorMessage: err.Error(),
		})
		json.WriteServiceUnavailableError(w, "The store is temporarily unavailable")
	default:
		logger.Error(logging.Internal, logging.ExternalService, "unhandled error", map[logging.ExtraKey]any{
			logging.Path:         r.URL.Path,
			logging.ErrorMessage: err.Error(),
		})
		json.WriteInternalError(w, err)
	}
}
