package users

import "time"

type credentialsRequest struct {
	DisplayName string `json:"displayName" example:"alice"`
}

// sessionResponse carries the bearer token for subsequent requests
type sessionResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          string    `json:"id" example:"7d1b2f7e-4f6a-4d2c-9d7e-0b8c2a1f3e4d"`
	DisplayName string    `json:"displayName" example:"alice"`
	Role        string    `json:"role" example:"basic" enum:"basic,moderator"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"`
}
