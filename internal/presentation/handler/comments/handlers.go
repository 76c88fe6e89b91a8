package comments

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/roomly/internal/infrastructure/json"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/presentation/utils"
	roomsService "github.com/hilthontt/roomly/internal/service/rooms"
)

type Handler struct {
	service *roomsService.Service
	logger  logging.Logger
}

func NewHandler(service *roomsService.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListCommentsHandler godoc
// @Summary      List comments of a room
// @Description  Returns the room's comments in order with their author's display name. The name is empty when the author no longer exists.
// @Tags         comments
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {array}  commentViewResponse
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Router       /rooms/{roomId}/comments [get]
func (h *Handler) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListComments(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	resp := make([]commentViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, commentViewResponse{
			ID:                v.ID,
			Content:           v.Content,
			AuthorDisplayName: v.AuthorDisplayName,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

// CreateCommentHandler godoc
// @Summary      Comment on a room
// @Description  Stores a comment authored by the caller and attaches it to the room. When the comment is stored but cannot be attached, 202 is returned with the orphaned comment id.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        roomId  path string               true "Room ID"
// @Param        request body createCommentRequest true "Comment"
// @Success      201 {object} commentResponse
// @Success      202 {object} orphanedCommentResponse "Stored but not attached"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      401 {object} json.ErrorResponse "Authentication required"
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Security     BearerAuth
// @Router       /rooms/{roomId}/comments [post]
func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validateContent(req.Content); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	comment, err := h.service.AddComment(r.Context(), utils.CallerFrom(r.Context()), chi.URLParam(r, "roomId"), req.Content)
	if err != nil {
		var partial *roomsService.PartialFailureError
		if errors.As(err, &partial) {
			json.Write(w, http.StatusAccepted, orphanedCommentResponse{
				CommentID: partial.CommentID,
				Orphaned:  true,
			})
			return
		}

		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusCreated, commentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
	})
}
