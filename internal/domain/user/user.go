package user

import "errors"

// IsAdmin is stored as the strings "true"/"false" to match the legacy
// schema the dashboard was built against.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never expose hash in JSON
	IsAdmin      string `json:"isAdmin"`
}

const (
	AdminFlagTrue  = "true"
	AdminFlagFalse = "false"
)

var ErrNotFound = errors.New("user not found")

func (u User) Admin() bool {
	return u.IsAdmin == AdminFlagTrue
}

type CreateUserRequest struct {
	Email        string
	PasswordHash string
	IsAdmin      string
}
