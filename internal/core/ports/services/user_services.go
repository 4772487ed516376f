package services

import (
	"context"
	"io"

	"github.com/vkravets/contacts_api/internal/core/domain"
	"github.com/vkravets/contacts_api/internal/dto"
)

// UserSvcFacade defines the interface for user account management.
type UserSvcFacade interface {
	// Register creates an unconfirmed user and dispatches a confirmation email in the
	// background. Fails with apperrors.ErrUsernameExists / apperrors.ErrEmailExists on
	// signup conflicts.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// ConfirmEmail verifies a confirmation token and flips the confirmed flag.
	// Returns alreadyConfirmed=true (and no error) when the flag was already set.
	ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error)

	// RequestConfirmationEmail re-sends the confirmation email for an unconfirmed
	// account. A confirmed account is a no-op.
	RequestConfirmationEmail(ctx context.Context, email string) (alreadyConfirmed bool, err error)

	// UpdateAvatar uploads a new avatar image and persists its URL.
	UpdateAvatar(ctx context.Context, user *domain.User, file io.Reader) (*domain.User, error)

	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
