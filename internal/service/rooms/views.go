package rooms

import "github.com/hilthontt/roomly/internal/domain"

type CreateRoomInput struct {
	Name        string
	Description string
	Price       string
}

// RoomDetail is a room with its references resolved. Owner is nil when the
// room has no owner or the owner no longer exists.
type RoomDetail struct {
	Room                 domain.Room
	Owner                *domain.User
	Comments             []ResolvedComment
	CanDelete            bool
	ShowDeleteAffordance bool
}

type ResolvedComment struct {
	Comment domain.Comment
	Author  *domain.User
}

type CommentView struct {
	ID                string
	Content           string
	AuthorDisplayName string
}

func (c ResolvedComment) View() CommentView {
	view := CommentView{
		ID:      c.Comment.ID,
		Content: c.Comment.Content,
	}
	if c.Author != nil {
		view.AuthorDisplayName = c.Author.DisplayName
	}

	return view
}
