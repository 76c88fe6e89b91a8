package rooms

import (
	"context"
	"errors"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/infrastructure/tracing"
	"github.com/hilthontt/roomly/internal/persistence/db"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultAuditLimit = 100

// EventPublisher is notified after successful writes. Publish failures are
// logged and never change the outcome of an operation.
type EventPublisher interface {
	PublishRoomCreated(ctx context.Context, room domain.Room) error
	PublishRoomDeleted(ctx context.Context, roomID string, actor domain.Caller) error
	PublishCommentAdded(ctx context.Context, roomID string, comment domain.Comment) error
	PublishCommentOrphaned(ctx context.Context, roomID string, comment domain.Comment, cause error) error
}

// Notifier pushes changes to connected live feed clients.
type Notifier interface {
	NotifyCommentAdded(roomID string, comment CommentView)
	NotifyRoomDeleted(roomID string)
}

type Recorder interface {
	RoomCreated()
	RoomDeleted()
	CommentAdded()
	CommentOrphaned()
}

type Service struct {
	rooms    domain.RoomRepository
	comments domain.CommentRepository
	users    domain.UserRepository
	audit    domain.RoomAuditRepository
	resolver *Resolver

	tx       db.Transactor
	events   EventPublisher
	notifier Notifier
	recorder Recorder
	logger   logging.Logger
	tracer   trace.Tracer
}

type Option func(*Service)

// WithTransactor runs comment creation inside a store transaction instead of
// the two independent writes.
func WithTransactor(tx db.Transactor) Option {
	return func(s *Service) { s.tx = tx }
}

func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithAuditLog(repo domain.RoomAuditRepository) Option {
	return func(s *Service) { s.audit = repo }
}

func NewService(
	rooms domain.RoomRepository,
	comments domain.CommentRepository,
	users domain.UserRepository,
	logger logging.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		rooms:    rooms,
		comments: comments,
		users:    users,
		resolver: NewResolver(comments, users),
		events:   nopEvents{},
		notifier: nopNotifier{},
		recorder: nopRecorder{},
		logger:   logger,
		tracer:   tracing.GetTracer("roomly/service/rooms"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) List(ctx context.Context) (rooms []domain.Room, err error) {
	ctx, span := s.tracer.Start(ctx, "rooms.List")
	defer func() { endSpan(span, err) }()

	rooms, err = s.rooms.List(ctx)
	if err != nil {
		return nil, classify(err)
	}

	return rooms, nil
}

func (s *Service) Get(ctx context.Context, caller *domain.Caller, id string) (detail *RoomDetail, err error) {
	ctx, span := s.tracer.Start(ctx, "rooms.Get", trace.WithAttributes(attribute.String("room.id", id)))
	defer func() { endSpan(span, err) }()

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}

	owner, comments, err := s.resolver.Resolve(ctx, room)
	if err != nil {
		return nil, classify(err)
	}

	return &RoomDetail{
		Room:                 *room,
		Owner:                owner,
		Comments:             comments,
		CanDelete:            domain.CanDeleteRoom(caller, room),
		ShowDeleteAffordance: domain.CanSeeDeleteAffordance(caller, room),
	}, nil
}

func (s *Service) Create(ctx context.Context, caller *domain.Caller, in CreateRoomInput) (room *domain.Room, err error) {
	ctx, span := s.tracer.Start(ctx, "rooms.Create")
	defer func() { endSpan(span, err) }()

	if !authenticated(caller) {
		return nil, ErrUnauthorized
	}

	room, err = domain.NewRoom(caller.ID, in.Name, in.Description, in.Price)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, classify(err)
	}

	s.recorder.RoomCreated()
	if err := s.events.PublishRoomCreated(ctx, *room); err != nil {
		s.logPublishFailure(logging.RoomID, room.ID, err)
	}

	return room, nil
}

// Delete removes the room when the caller may delete it. A room that does not
// exist, or that the caller does not own, is left alone and Delete still
// returns nil.
func (s *Service) Delete(ctx context.Context, caller *domain.Caller, id string) (err error) {
	ctx, span := s.tracer.Start(ctx, "rooms.Delete", trace.WithAttributes(attribute.String("room.id", id)))
	defer func() { endSpan(span, err) }()

	if !authenticated(caller) {
		return ErrUnauthorized
	}

	deleted, err := s.rooms.DeleteMatching(ctx, domain.DeletionFilter(caller, id))
	if err != nil {
		return classify(err)
	}

	span.SetAttributes(attribute.Int64("rooms.deleted", deleted))

	if deleted == 0 {
		s.logger.Debug(logging.MongoDB, logging.Delete, "delete matched no room", map[logging.ExtraKey]any{
			logging.RoomID: id,
			logging.UserID: caller.ID,
		})
		return nil
	}

	s.recorder.RoomDeleted()
	s.notifier.NotifyRoomDeleted(id)
	if err := s.events.PublishRoomDeleted(ctx, id, *caller); err != nil {
		s.logPublishFailure(logging.RoomID, id, err)
	}

	return nil
}

// AddComment stores a comment and appends it to the room. Without a
// transactor the two writes are independent: when the append fails the
// comment stays orphaned and a *PartialFailureError is returned.
func (s *Service) AddComment(ctx context.Context, caller *domain.Caller, roomID, content string) (comment *domain.Comment, err error) {
	ctx, span := s.tracer.Start(ctx, "rooms.AddComment", trace.WithAttributes(attribute.String("room.id", roomID)))
	defer func() { endSpan(span, err) }()

	if !authenticated(caller) {
		return nil, ErrUnauthorized
	}

	comment, err = domain.NewComment(caller.ID, content)
	if err != nil {
		return nil, err
	}

	if s.tx != nil {
		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.comments.Create(ctx, comment); err != nil {
				return err
			}
			return s.rooms.AppendComment(ctx, roomID, comment.ID)
		})
		if err != nil {
			s.logger.Warn(logging.MongoDB, logging.Rollback, "comment transaction aborted", map[logging.ExtraKey]any{
				logging.RoomID:       roomID,
				logging.ErrorMessage: err.Error(),
			})
			return nil, classify(err)
		}
	} else {
		if err := s.comments.Create(ctx, comment); err != nil {
			return nil, classify(err)
		}

		if err := s.rooms.AppendComment(ctx, roomID, comment.ID); err != nil {
			return nil, s.orphan(ctx, roomID, *comment, err)
		}
	}

	s.recorder.CommentAdded()
	s.notifier.NotifyCommentAdded(roomID, ResolvedComment{
		Comment: *comment,
		Author:  s.lookupAuthor(ctx, caller.ID),
	}.View())
	if err := s.events.PublishCommentAdded(ctx, roomID, *comment); err != nil {
		s.logPublishFailure(logging.CommentID, comment.ID, err)
	}

	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, roomID string) (views []CommentView, err error) {
	ctx, span := s.tracer.Start(ctx, "rooms.ListComments", trace.WithAttributes(attribute.String("room.id", roomID)))
	defer func() { endSpan(span, err) }()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, classify(err)
	}

	_, comments, err := s.resolver.Resolve(ctx, room)
	if err != nil {
		return nil, classify(err)
	}

	views = make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View())
	}

	return views, nil
}

// AuditTrail returns the newest audit entries of a room. Moderators only.
func (s *Service) AuditTrail(ctx context.Context, caller *domain.Caller, roomID string, limit int) ([]domain.RoomAuditLog, error) {
	if !authenticated(caller) {
		return nil, ErrUnauthorized
	}
	if !caller.IsModerator() {
		return nil, ErrForbidden
	}

	if s.audit == nil {
		return []domain.RoomAuditLog{}, nil
	}

	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}

	logs, err := s.audit.GetByRoomID(ctx, roomID, limit)
	if err != nil {
		return nil, classify(err)
	}

	return logs, nil
}

func (s *Service) orphan(ctx context.Context, roomID string, comment domain.Comment, cause error) error {
	classified := classify(cause)

	s.recorder.CommentOrphaned()
	s.logger.Error(logging.MongoDB, logging.Update, "comment created but not attached to room", map[logging.ExtraKey]any{
		logging.RoomID:       roomID,
		logging.CommentID:    comment.ID,
		logging.ErrorMessage: cause.Error(),
	})

	if err := s.events.PublishCommentOrphaned(ctx, roomID, comment, classified); err != nil {
		s.logPublishFailure(logging.CommentID, comment.ID, err)
	}

	return &PartialFailureError{
		RoomID:    roomID,
		CommentID: comment.ID,
		Err:       classified,
	}
}

// lookupAuthor is best effort; the live feed shows an empty name on failure.
func (s *Service) lookupAuthor(ctx context.Context, userID string) *domain.User {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn(logging.MongoDB, logging.Select, "author lookup failed", map[logging.ExtraKey]any{
				logging.UserID:       userID,
				logging.ErrorMessage: err.Error(),
			})
		}
		return nil
	}

	return user
}

func (s *Service) logPublishFailure(key logging.ExtraKey, id string, err error) {
	s.logger.Error(logging.RabbitMQ, logging.Publish, "failed to publish event", map[logging.ExtraKey]any{
		key:                  id,
		logging.ErrorMessage: err.Error(),
	})
}

func authenticated(caller *domain.Caller) bool {
	return caller != nil && caller.ID != ""
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type nopEvents struct{}

func (nopEvents) PublishRoomCreated(context.Context, domain.Room) error                       { return nil }
func (nopEvents) PublishRoomDeleted(context.Context, string, domain.Caller) error             { return nil }
func (nopEvents) PublishCommentAdded(context.Context, string, domain.Comment) error           { return nil }
func (nopEvents) PublishCommentOrphaned(context.Context, string, domain.Comment, error) error { return nil }

type nopNotifier struct{}

func (nopNotifier) NotifyCommentAdded(string, CommentView) {}
func (nopNotifier) NotifyRoomDeleted(string)               {}

type nopRecorder struct{}

func (nopRecorder) RoomCreated()     {}
func (nopRecorder) RoomDeleted()     {}
func (nopRecorder) CommentAdded()    {}
func (nopRecorder) CommentOrphaned() {}
