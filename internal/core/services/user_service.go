package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/dto"
	"github.com/vkravets/contacts_api/internal/platform/avatar"
	"github.com/vkravets/contacts_api/internal/platform/cache"
	"github.com/vkravets/contacts_api/internal/platform/config"
	"github.com/vkravets/contacts_api/internal/utils"
)

// emailDispatchTimeout bounds the background confirmation email send; the request
// that triggered it has usually finished by then.
const emailDispatchTimeout = 30 * time.Second

type userService struct {
	cfg         *config.Config
	userRepo    portsrepo.UserRepository
	tokenSvc    portssvc.TokenSvcFacade
	emailSender emailSender
	avatars     avatar.Uploader
	cache       cache.UserCache
	logger      *slog.Logger
}

// emailSender is the slice of platform/email.EmailSender this service needs.
type emailSender interface {
	SendConfirmation(ctx context.Context, toEmail, username, token, baseURL string) error
}

// NewUserService creates a new instance of userService.
func NewUserService(
	cfg *config.Config,
	userRepo portsrepo.UserRepository,
	tokenSvc portssvc.TokenSvcFacade,
	sender emailSender,
	avatars avatar.Uploader,
	userCache cache.UserCache,
	logger *slog.Logger,
) portssvc.UserSvcFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		cfg:         cfg,
		userRepo:    userRepo,
		tokenSvc:    tokenSvc,
		emailSender: sender,
		avatars:     avatars,
		cache:       userCache,
		logger:      logger,
	}
}

// Register creates a new unconfirmed account and dispatches the confirmation email as
// a fire-and-forget background task. Email delivery failures are invisible to the
// signup request; the user can always ask for a re-send.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.ErrUsernameExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Confirmed:    false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.dispatchConfirmationEmail(user.Email, user.Username)

	return &user, nil
}

// dispatchConfirmationEmail mints an email-scope token and sends the confirmation
// link in a detached goroutine, independent of the request's cancellation.
func (s *userService) dispatchConfirmationEmail(email, username string) {
	token, err := s.tokenSvc.IssueConfirmationToken(email)
	if err != nil {
		s.logger.Error("Failed to issue confirmation token", slog.String("email", email), slog.String("error", err.Error()))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailDispatchTimeout)
		defer cancel()
		if err := s.emailSender.SendConfirmation(ctx, email, username, token, s.cfg.AppBaseURL); err != nil {
			s.logger.Error("Failed to send confirmation email", slog.String("email", email), slog.String("error", err.Error()))
		}
	}()
}

func (s *userService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	email, err := s.tokenSvc.VerifyConfirmationToken(token)
	if err != nil {
		return false, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, fmt.Errorf("%w: no account for confirmed email", apperrors.ErrNotFound)
		}
		return false, fmt.Errorf("failed to load user for email confirmation: %w", err)
	}

	if user.Confirmed {
		return true, nil
	}

	if err := s.userRepo.ConfirmEmail(ctx, email); err != nil {
		return false, fmt.Errorf("failed to confirm email: %w", err)
	}

	// Drop the cached snapshot so the confirmed flag is visible immediately instead
	// of after the TTL.
	_ = s.cache.Del(ctx, userCacheKey(user.Username))

	return false, nil
}

func (s *userService) RequestConfirmationEmail(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.ErrNotFound
		}
		return false, fmt.Errorf("failed to load user for confirmation re-send: %w", err)
	}

	if user.Confirmed {
		return true, nil
	}

	s.dispatchConfirmationEmail(user.Email, user.Username)
	return false, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, user *domain.User, file io.Reader) (*domain.User, error) {
	if s.avatars == nil {
		return nil, fmt.Errorf("avatar storage is not configured")
	}

	url, err := s.avatars.Upload(ctx, user.Username, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	updated, err := s.userRepo.UpdateAvatar(ctx, user.UserID, url)
	if err != nil {
		return nil, fmt.Errorf("failed to persist avatar URL: %w", err)
	}

	_ = s.cache.Del(ctx, userCacheKey(user.Username))

	return updated, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}
