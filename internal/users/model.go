package users

import "time"

const DefaultRole = "user"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Name  string
	Email string
	Role  string
}

// UpdateUserRequest carries the full replacement shape for a user. Updates
// rewrite name, email and role; there is no partial-patch path.
type UpdateUserRequest struct {
	ID    string
	Name  string
	Email string
	Role  string
}
