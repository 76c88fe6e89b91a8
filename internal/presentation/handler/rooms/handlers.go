package rooms

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/roomly/internal/infrastructure/json"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/infrastructure/ws"
	"github.com/hilthontt/roomly/internal/presentation/utils"
	roomsService "github.com/hilthontt/roomly/internal/service/rooms"
)

type Handler struct {
	service *roomsService.Service
	core    *ws.Core
	logger  logging.Logger
}

func NewHandler(service *roomsService.Service, core *ws.Core, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		core:    core,
		logger:  logger,
	}
}

// ListRoomsHandler godoc
// @Summary      List rooms
// @Description  Returns every room in creation order
// @Tags         rooms
// @Produce      json
// @Success      200 {array}  roomSummaryResponse
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Router       /rooms [get]
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	resp := make([]roomSummaryResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, toSummary(room))
	}

	json.Write(w, http.StatusOK, resp)
}

// GetRoomHandler godoc
// @Summary      Get a room
// @Description  Returns a room with its owner and comments resolved. The delete flags reflect the caller.
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} roomDetailResponse
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Security     BearerAuth
// @Router       /rooms/{roomId} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	detail, err := h.service.Get(r.Context(), utils.CallerFrom(r.Context()), roomID)
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, toDetail(detail))
}

// CreateRoomHandler godoc
// @Summary      Create a room
// @Description  Lists a new room owned by the caller
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body createRoomRequest true "Room fields"
// @Success      201 {object} createRoomResponse
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      401 {object} json.ErrorResponse "Authentication required"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Security     BearerAuth
// @Router       /rooms [post]
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := req.validate(); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.service.Create(r.Context(), utils.CallerFrom(r.Context()), roomsService.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusCreated, createRoomResponse{ID: room.ID})
}

// DeleteRoomHandler godoc
// @Summary      Delete a room
// @Description  Deletes the room when the caller owns it or is a moderator. Otherwise nothing happens and 204 is still returned.
// @Tags         rooms
// @Param        roomId path string true "Room ID"
// @Success      204 "Deleted, or nothing to delete"
// @Failure      401 {object} json.ErrorResponse "Authentication required"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Security     BearerAuth
// @Router       /rooms/{roomId} [delete]
func (h *Handler) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.delete(r); err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteRoomLinkHandler godoc
// @Summary      Delete a room (link form)
// @Description  Same as DELETE /rooms/{roomId}, then redirects to the room list
// @Tags         rooms
// @Param        roomId path string true "Room ID"
// @Success      303 "Redirect to /api/rooms"
// @Failure      401 {object} json.ErrorResponse "Authentication required"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Security     BearerAuth
// @Router       /rooms/{roomId}/delete [get]
func (h *Handler) DeleteRoomLinkHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.delete(r); err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/api/rooms", http.StatusSeeOther)
}

func (h *Handler) delete(r *http.Request) error {
	return h.service.Delete(r.Context(), utils.CallerFrom(r.Context()), chi.URLParam(r, "roomId"))
}

// AuditTrailHandler godoc
// @Summary      Room audit trail
// @Description  Newest audit entries of a room, moderators only
// @Tags         rooms
// @Produce      json
// @Param        roomId path  string true  "Room ID"
// @Param        limit  query int    false "Maximum entries (1-100)"
// @Success      200 {array}  auditLogResponse
// @Failure      401 {object} json.ErrorResponse "Authentication required"
// @Failure      403 {object} json.ErrorResponse "Moderator role required"
// @Failure      503 {object} json.ErrorResponse "Store unavailable"
// @Security     BearerAuth
// @Router       /rooms/{roomId}/audit [get]
func (h *Handler) AuditTrailHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			json.WriteBadRequestError(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	logs, err := h.service.AuditTrail(r.Context(), utils.CallerFrom(r.Context()), chi.URLParam(r, "roomId"), limit)
	if err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	resp := make([]auditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, auditLogResponse{
			ID:        l.ID,
			EventType: string(l.EventType),
			ActorID:   l.ActorID,
			Timestamp: l.Timestamp,
			Metadata:  l.Metadata,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

// FeedHandler godoc
// @Summary      Live comment feed
// @Description  Upgrades to a WebSocket. The server first sends comment.history, then comment.added and room.deleted as they happen. Inbound frames are ignored.
// @Tags         rooms
// @Param        roomId path string true "Room ID"
// @Success      101 "Switching Protocols"
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Router       /rooms/{roomId}/feed [get]
func (h *Handler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	if _, err := h.service.Get(r.Context(), nil, roomID); err != nil {
		utils.WriteServiceError(w, r, h.logger, err)
		return
	}

	conn, err := ws.Upgrade(w, r)
	if err != nil {
		// the upgrader has already written the error response
		h.logger.Warn(logging.WebSocket, logging.ExternalService, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.RoomID:       roomID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, roomID)
	if !h.core.Join(client) {
		h.logger.Warn(logging.WebSocket, logging.Shutdown, "feed hub stopped, closing connection", map[logging.ExtraKey]any{
			logging.RoomID: roomID,
		})
		_ = client.Close()
		return
	}

	go client.WriteMessage(h.logger)
	go client.ReadMessage(h.core, h.logger)
}
