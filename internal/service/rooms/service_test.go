package rooms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hilthontt/roomly/internal/domain"
	"github.com/hilthontt/roomly/internal/infrastructure/logging"
	"github.com/hilthontt/roomly/internal/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

type failingRooms struct {
	domain.RoomRepository
	listErr   error
	getErr    error
	deleteErr error
	appendErr error
}

func (r *failingRooms) List(ctx context.Context) ([]domain.Room, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.RoomRepository.List(ctx)
}

func (r *failingRooms) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.RoomRepository.GetByID(ctx, id)
}

func (r *failingRooms) DeleteMatching(ctx context.Context, f domain.RoomFilter) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	return r.RoomRepository.DeleteMatching(ctx, f)
}

func (r *failingRooms) AppendComment(ctx context.Context, roomID, commentID string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	return r.RoomRepository.AppendComment(ctx, roomID, commentID)
}

type failingComments struct {
	domain.CommentRepository
	createErr error
}

func (c *failingComments) Create(ctx context.Context, comment *domain.Comment) error {
	if c.createErr != nil {
		return c.createErr
	}
	return c.CommentRepository.Create(ctx, comment)
}

type fakeTransactor struct {
	calls   int
	aborted bool
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(ctx); err != nil {
		t.aborted = true
		return err
	}
	return nil
}

type recordedEvent struct {
	kind   string
	roomID string
}

type recordingEvents struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (e *recordingEvents) record(kind, roomID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, recordedEvent{kind: kind, roomID: roomID})
	return e.err
}

func (e *recordingEvents) PublishRoomCreated(_ context.Context, room domain.Room) error {
	return e.record("room.created", room.ID)
}

func (e *recordingEvents) PublishRoomDeleted(_ context.Context, roomID string, _ domain.Caller) error {
	return e.record("room.deleted", roomID)
}

func (e *recordingEvents) PublishCommentAdded(_ context.Context, roomID string, _ domain.Comment) error {
	return e.record("comment.added", roomID)
}

func (e *recordingEvents) PublishCommentOrphaned(_ context.Context, roomID string, _ domain.Comment, _ error) error {
	return e.record("comment.orphaned", roomID)
}

func (e *recordingEvents) kinds() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	kinds := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		kinds = append(kinds, ev.kind)
	}
	return kinds
}

type recordingNotifier struct {
	comments []CommentView
	deleted  []string
}

func (n *recordingNotifier) NotifyCommentAdded(_ string, c CommentView) { n.comments = append(n.comments, c) }
func (n *recordingNotifier) NotifyRoomDeleted(roomID string)            { n.deleted = append(n.deleted, roomID) }

type countingRecorder struct {
	created, deleted, added, orphaned int
}

func (r *countingRecorder) RoomCreated()     { r.created++ }
func (r *countingRecorder) RoomDeleted()     { r.deleted++ }
func (r *countingRecorder) CommentAdded()    { r.added++ }
func (r *countingRecorder) CommentOrphaned() { r.orphaned++ }

type fixture struct {
	svc      *Service
	rooms    *failingRooms
	comments *failingComments
	users    domain.UserRepository
	events   *recordingEvents
	notifier *recordingNotifier
	recorder *countingRecorder
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		rooms:    &failingRooms{RoomRepository: memory.NewRoomRepository()},
		comments: &failingComments{CommentRepository: memory.NewCommentRepository()},
		users:    memory.NewUserRepository(),
		events:   &recordingEvents{},
		notifier: &recordingNotifier{},
		recorder: &countingRecorder{},
	}

	opts = append([]Option{
		WithEvents(f.events),
		WithNotifier(f.notifier),
		WithRecorder(f.recorder),
	}, opts...)

	f.svc = NewService(f.rooms, f.comments, f.users, logging.NewNop(), opts...)
	return f
}

func (f *fixture) user(t *testing.T, name string, role domain.Role) *domain.Caller {
	t.Helper()

	u, err := domain.NewUser(name, role)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))

	return domain.NewCaller(u.ID, u.Role)
}

func (f *fixture) room(t *testing.T, owner *domain.Caller) *domain.Room {
	t.Helper()

	room, err := f.svc.Create(context.Background(), owner, CreateRoomInput{
		Name:        "Red Room",
		Description: "d",
		Price:       "10",
	})
	require.NoError(t, err)

	return room
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "alice", domain.RoleBasic)
	u2 := f.user(t, "bob", domain.RoleBasic)

	room := f.room(t, u1)

	detail, err := f.svc.Get(ctx, u1, room.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, u1.ID, detail.Owner.ID)
	assert.Empty(t, detail.Comments)
	assert.True(t, detail.CanDelete)
	assert.True(t, detail.ShowDeleteAffordance)

	_, err = f.svc.AddComment(ctx, u2, room.ID, "hi")
	require.NoError(t, err)

	views, err := f.svc.ListComments(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "hi", views[0].Content)
	assert.Equal(t, "bob", views[0].AuthorDisplayName)

	assert.Equal(t, []string{"room.created", "comment.added"}, f.events.kinds())
	require.Len(t, f.notifier.comments, 1)
	assert.Equal(t, "bob", f.notifier.comments[0].AuthorDisplayName)
	assert.Equal(t, 1, f.recorder.created)
	assert.Equal(t, 1, f.recorder.added)
}

func TestGet_AffordanceFollowsCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "owner", domain.RoleBasic)
	other := f.user(t, "other", domain.RoleBasic)
	mod := f.user(t, "mod", domain.RoleModerator)
	room := f.room(t, owner)

	tests := []struct {
		name   string
		caller *domain.Caller
		want   bool
	}{
		{"anonymous", nil, false},
		{"stranger", other, false},
		{"owner", owner, true},
		{"moderator", mod, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := f.svc.Get(ctx, tt.caller, room.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, detail.CanDelete)
			assert.Equal(t, tt.want, detail.ShowDeleteAffordance)
		})
	}
}

func TestGet_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Get(ctx, nil, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.getErr = errStoreDown
		_, err := f.svc.Get(ctx, nil, "r1")
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, errStoreDown)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestGet_DanglingReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Owner and comment author were never stored; c-missing does not exist.
	require.NoError(t, f.rooms.Create(ctx, &domain.Room{
		ID:         "r1",
		Name:       "legacy",
		OwnerID:    "ghost",
		CommentIDs: []string{"c1", "c-missing"},
	}))
	require.NoError(t, f.comments.Create(ctx, &domain.Comment{ID: "c1", Content: "still here", AuthorID: "ghost"}))

	detail, err := f.svc.Get(ctx, nil, "r1")
	require.NoError(t, err)
	assert.Nil(t, detail.Owner)
	require.Len(t, detail.Comments, 1)
	assert.Nil(t, detail.Comments[0].Author)

	views, err := f.svc.ListComments(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "", views[0].AuthorDisplayName)
}

func TestOwnerlessRoom_OnlyModeratorMayDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	basic := f.user(t, "basic", domain.RoleBasic)
	mod := f.user(t, "mod", domain.RoleModerator)
	require.NoError(t, f.rooms.Create(ctx, &domain.Room{ID: "r1", Name: "legacy"}))

	detail, err := f.svc.Get(ctx, basic, "r1")
	require.NoError(t, err)
	assert.False(t, detail.CanDelete)

	require.NoError(t, f.svc.Delete(ctx, basic, "r1"))
	_, err = f.svc.Get(ctx, nil, "r1")
	require.NoError(t, err, "ownerless room survives a basic caller's delete")

	require.NoError(t, f.svc.Delete(ctx, mod, "r1"))
	_, err = f.svc.Get(ctx, nil, "r1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("store order", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "alice", domain.RoleBasic)
		first := f.room(t, u)
		second := f.room(t, u)

		rooms, err := f.svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, first.ID, rooms[0].ID)
		assert.Equal(t, second.ID, rooms[1].ID)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.listErr = errStoreDown
		_, err := f.svc.List(ctx)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, nil, CreateRoomInput{Name: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.Create(ctx, &domain.Caller{}, CreateRoomInput{Name: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	u := f.user(t, "alice", domain.RoleBasic)
	room := f.room(t, u)
	assert.Equal(t, u.ID, room.OwnerID)
	assert.NotNil(t, room.CommentIDs)
	assert.Empty(t, room.CommentIDs)
	assert.NotEmpty(t, room.ID)
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	u := f.user(t, "alice", domain.RoleBasic)

	room, err := f.svc.Create(context.Background(), u, CreateRoomInput{Name: "Red Room"})
	require.NoError(t, err)
	assert.NotEmpty(t, room.ID)
}

func TestOwnershipIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.user(t, "owner", domain.RoleBasic)
	other := f.user(t, "other", domain.RoleBasic)
	room := f.room(t, owner)

	_, err := f.svc.AddComment(ctx, other, room.ID, "mine now?")
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, other, room.ID))

	detail, err := f.svc.Get(ctx, nil, room.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, detail.Room.OwnerID)
}

func TestDelete_AuthorizationGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "owner", domain.RoleBasic)
	u2 := f.user(t, "intruder", domain.RoleBasic)
	room := f.room(t, u1)

	require.NoError(t, f.svc.Delete(ctx, u2, room.ID))

	_, err := f.svc.Get(ctx, nil, room.ID)
	require.NoError(t, err, "room still present")
	assert.Empty(t, f.notifier.deleted)
	assert.Equal(t, 0, f.recorder.deleted)
	assert.NotContains(t, f.events.kinds(), "room.deleted")
}

func TestDelete_ModeratorOverride(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "owner", domain.RoleBasic)
	mod := f.user(t, "mod", domain.RoleModerator)
	room := f.room(t, u1)

	require.NoError(t, f.svc.Delete(ctx, mod, room.ID))

	_, err := f.svc.Get(ctx, nil, room.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{room.ID}, f.notifier.deleted)
	assert.Equal(t, 1, f.recorder.deleted)
	assert.Contains(t, f.events.kinds(), "room.deleted")
}

func TestDelete_OwnerDeletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.user(t, "owner", domain.RoleBasic)
	room := f.room(t, u1)

	require.NoError(t, f.svc.Delete(ctx, u1, room.ID))

	rooms, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "alice", domain.RoleBasic)

	assert.NoError(t, f.svc.Delete(ctx, u, "does-not-exist"))
	assert.NoError(t, f.svc.Delete(ctx, u, "does-not-exist"))
}

func TestDelete_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.svc.Delete(ctx, nil, "r1"), ErrUnauthorized)

	u := f.user(t, "alice", domain.RoleBasic)
	f.rooms.deleteErr = errStoreDown
	assert.ErrorIs(t, f.svc.Delete(ctx, u, "r1"), ErrStoreUnavailable)
}

func TestAddComment_Ordering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "alice", domain.RoleBasic)
	room := f.room(t, u)

	c1, err := f.svc.AddComment(ctx, u, room.ID, "first")
	require.NoError(t, err)
	c2, err := f.svc.AddComment(ctx, u, room.ID, "second")
	require.NoError(t, err)

	detail, err := f.svc.Get(ctx, nil, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c1.ID, c2.ID}, detail.Room.CommentIDs)

	views, err := f.svc.ListComments(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "first", views[0].Content)
	assert.Equal(t, "second", views[1].Content)
}

func TestAddComment_AuthorIsCaller(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice", domain.RoleBasic)
	room := f.room(t, u)

	comment, err := f.svc.AddComment(context.Background(), u, room.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, u.ID, comment.AuthorID)
}

func TestAddComment_Unauthorized(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddComment(context.Background(), nil, "r1", "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAddComment_CreateFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "alice", domain.RoleBasic)
	room := f.room(t, u)
	f.comments.createErr = errStoreDown

	_, err := f.svc.AddComment(ctx, u, room.ID, "hi")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrPartialFailure)

	detail, err := f.svc.Get(ctx, nil, room.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Room.CommentIDs)
}

func TestAddComment_PartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "alice", domain.RoleBasic)
	room := f.room(t, u)
	f.rooms.appendErr = errStoreDown

	comment, err := f.svc.AddComment(ctx, u, room.ID, "hi")
	assert.Nil(t, comment)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, room.ID, partial.RoomID)

	orphan, err := f.comments.GetByID(ctx, partial.CommentID)
	require.NoError(t, err, "orphaned comment stays in the store")
	assert.Equal(t, "hi", orphan.Content)

	detail, err := f.svc.Get(ctx, nil, room.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Room.CommentIDs, "room unchanged")

	assert.Equal(t, 1, f.recorder.orphaned)
	assert.Equal(t, 0, f.recorder.added)
	assert.Contains(t, f.events.kinds(), "comment.orphaned")
	assert.Empty(t, f.notifier.comments)
}

func TestAddComment_MissingRoomIsPartialFailure(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice", domain.RoleBasic)

	_, err := f.svc.AddComment(context.Background(), u, "missing", "hi")
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestAddComment_Transactional(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTransactor{}
	f := newFixture(t, WithTransactor(tx))
	u := f.user(t, "alice", domain.RoleBasic)
	room := f.room(t, u)

	comment, err := f.svc.AddComment(ctx, u, room.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.False(t, tx.aborted)

	detail, err := f.svc.Get(ctx, nil, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{comment.ID}, detail.Room.CommentIDs)

	f.rooms.appendErr = errStoreDown
	_, err = f.svc.AddComment(ctx, u, room.ID, "lost")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrPartialFailure)
	assert.True(t, tx.aborted)
	assert.Equal(t, 0, f.recorder.orphaned)
}

func TestListComments_MissingRoom(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListComments(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuditTrail(t *testing.T) {
	ctx := context.Background()
	audit := memory.NewRoomAuditRepository(0)
	f := newFixture(t, WithAuditLog(audit))
	basic := f.user(t, "basic", domain.RoleBasic)
	mod := f.user(t, "mod", domain.RoleModerator)
	room := f.room(t, basic)
	require.NoError(t, audit.Log(ctx, domain.NewRoomCreatedLog(*room)))

	_, err := f.svc.AuditTrail(ctx, nil, room.ID, 10)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.AuditTrail(ctx, basic, room.ID, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	logs, err := f.svc.AuditTrail(ctx, mod, room.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.EventRoomCreated, logs[0].EventType)
}

func TestPartialFailureError_Message(t *testing.T) {
	err := &PartialFailureError{RoomID: "r1", CommentID: "c1", Err: classify(errStoreDown)}
	assert.Contains(t, err.Error(), "c1")
	assert.Contains(t, err.Error(), "r1")
	assert.Contains(t, err.Error(), "connection refused")
}
