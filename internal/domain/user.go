package domain

import "time"

// UserType enumerates supported account types.
type UserType string

const (
	UserTypeArtisan UserType = "artisan"
	UserTypeBuyer   UserType = "buyer"
)

// User represents a registered account within the marketplace.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserType  UserType  `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}
