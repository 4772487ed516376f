package repositories

import (
	"context"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// CreateUser inserts a new user row. Returns apperrors.ErrUsernameExists or
	// apperrors.ErrEmailExists when a unique constraint is violated.
	CreateUser(ctx context.Context, user domain.User) error

	// FindUserByUsername returns apperrors.ErrNotFound when no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail returns apperrors.ErrNotFound when no such user exists.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateRefreshToken unconditionally replaces the stored refresh token hash.
	// Used on login, where no previous token needs to match.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string) error

	// RotateRefreshToken atomically replaces the stored refresh token hash only if it
	// still equals oldHash (compare-and-swap). Returns false when the swap did not
	// happen because the stored value changed underneath the caller.
	RotateRefreshToken(ctx context.Context, userID string, oldHash, newHash string) (bool, error)

	// ClearRefreshToken revokes the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error

	// ConfirmEmail sets the confirmed flag for the user with the given email.
	ConfirmEmail(ctx context.Context, email string) error

	// UpdateAvatar persists a new avatar URL and returns the updated user.
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error)
}
