package dto

import (
	"time"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	AvatarURL string    `json:"avatarURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterResponse is returned after a successful signup.
type RegisterResponse struct {
	User   UserResponse `json:"user"`
	Detail string       `json:"detail"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}
