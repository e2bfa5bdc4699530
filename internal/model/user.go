package model

import "time"

// User represents an account that can log in to the portal
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never leaves the process
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the form body of /login and /register
type Credentials struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// CreateUserRequest is used by admins to create a user with an arbitrary admin flag
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// NewUserResponse strips a user down to its public fields
func NewUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// DisplayName is "Admin" for administrators and the username otherwise
func (u *User) DisplayName() string {
	if u.IsAdmin {
		return "Admin"
	}
	return u.Username
}
