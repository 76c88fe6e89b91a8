package domain

// Caller is the authenticated principal of a request. A nil *Caller is an
// anonymous request.
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func NewCaller(id string, role Role) *Caller {
	if id == "" {
		return nil
	}

	if role == "" {
		role = RoleBasic
	}

	return &Caller{
		ID:   id,
		Role: role,
	}
}

func (c *Caller) IsModerator() bool {
	return c != nil && c.Role == RoleModerator
}
