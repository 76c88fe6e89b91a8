package users

import (
	"net/http"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/json"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/presentation/utils"
	usersService "github.com/hilthontt/roomly/internal/service/users"
)

type Handler struct {
	service *usersService.Service
	logger  logging.Logger
}

func NewHandler(service *usersService.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterHandler godoc
// @Summary      Register
// @Description  Creates a basic user and returns a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body credentialsRequest true "Display name"
// @Success      201 {object} sessionResponse
// @Failure      400 {object} json.ErrorResponse "Invalid display name"
// @Failure      409 {object} json.ErrorResponse "Display name taken"
// @Router       /users [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	user, token, err := h.service.Register(r.Context(), req.DisplayName)
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusCreated, sessionResponse{Token: token, User: toUserResponse(user)})
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Issues a bearer token for an existing user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body credentialsRequest true "Display name"
// @Success      200 {object} sessionResponse
// @Failure      404 {object} json.ErrorResponse "Unknown user"
// @Router       /sessions [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.DisplayName)
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, sessionResponse{Token: token, User: toUserResponse(user)})
}

// MeHandler godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200 {object} userResponse
// @Failure      401 {object} json.ErrorResponse "Authentication required"
// @Failure      404 {object} json.ErrorResponse "User no longer exists"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	caller := utils.CallerFrom(r.Context())
	if caller == nil {
		json.WriteUnauthorizedError(w, "Authentication required")
		return
	}

	user, err := h.service.Get(r.Context(), caller.ID)
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}
