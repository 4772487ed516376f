package services

import (
	"context"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// TokenSvcFacade defines the interface for token issuance, verification, identity
// resolution and refresh rotation.
type TokenSvcFacade interface {
	// IssueAccessToken mints a short-lived access token for the username.
	IssueAccessToken(username string) (string, error)
	// IssueRefreshToken mints a long-lived refresh token for the username. The caller
	// is responsible for persisting its hash against the user.
	IssueRefreshToken(username string) (string, error)
	// IssueConfirmationToken mints an email-scope token whose subject is the email.
	IssueConfirmationToken(email string) (string, error)

	// VerifyAccessToken returns the subject username. Fails with
	// apperrors.ErrInvalidScope for a non-access token and apperrors.ErrInvalidCredentials
	// for anything unverifiable (bad signature, expired, empty subject).
	VerifyAccessToken(tokenString string) (string, error)
	// VerifyRefreshToken returns the subject username. Fails with
	// apperrors.ErrInvalidScope for a non-refresh token, apperrors.ErrInvalidCredentials
	// otherwise.
	VerifyRefreshToken(tokenString string) (string, error)
	// VerifyConfirmationToken returns the subject email. Fails with
	// apperrors.ErrInvalidScope for a non-email token and apperrors.ErrUnprocessableToken
	// on signature/format errors.
	VerifyConfirmationToken(tokenString string) (string, error)

	// ResolveCurrentUser resolves a bearer access token to the full user, going through
	// the identity cache with fallback to the credential store.
	ResolveCurrentUser(ctx context.Context, accessToken string) (*domain.User, error)

	// RotateRefreshToken exchanges a valid refresh token for a new token pair,
	// enforcing the single-active-token policy. A mismatch against the stored value
	// revokes the stored token and fails with apperrors.ErrTokenReuseDetected.
	RotateRefreshToken(ctx context.Context, presentedToken string) (*domain.TokenPair, error)

	// Authenticate verifies credentials and issues a fresh token pair, persisting the
	// refresh token hash on the user.
	Authenticate(ctx context.Context, username, password string) (*domain.TokenPair, error)
}
