package domain

import "time"

// User represents an account holder in the domain.
//
// At most one refresh token is valid per user at any time: RefreshTokenHash holds the
// SHA256 hash of the currently active refresh token, or is empty when the user has no
// active session (never logged in, logged out, or revoked after reuse detection).
type User struct {
	UserID           string    `json:"userID"` // Primary key (UUID)
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Confirmed        bool      `json:"confirmed"`
	AvatarURL        string    `json:"avatarURL,omitempty"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}
