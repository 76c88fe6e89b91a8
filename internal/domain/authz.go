package domain

// CanDeleteRoom reports whether caller may delete room: moderators always
// may, owners may delete their own rooms, anonymous callers never may. A
// room without an owner only admits moderators.
func CanDeleteRoom(caller *Caller, room *Room) bool {
	if caller == nil {
		return false
	}

	if caller.IsModerator() {
		return true
	}

	return room.IsOwnedBy(caller.ID)
}

// CanSeeDeleteAffordance decides whether the delete control is shown for room.
// It follows the same rule as CanDeleteRoom.
func CanSeeDeleteAffordance(caller *Caller, room *Room) bool {
	return CanDeleteRoom(caller, room)
}

// DeletionFilter narrows a delete to the caller's own rooms unless the caller
// is a moderator. Callers must be authenticated before building a filter.
func DeletionFilter(caller *Caller, roomID string) RoomFilter {
	filter := RoomFilter{ID: roomID}
	if caller != nil && !caller.IsModerator() {
		filter.OwnerID = caller.ID
	}

	return filter
}
