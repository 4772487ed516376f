package services

import (
	"log/slog"

	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/platform/avatar"
	"github.com/vkravets/contacts_api/internal/platform/cache"
	"github.com/vkravets/contacts_api/internal/platform/config"
	"github.com/vkravets/contacts_api/internal/platform/email"
)

// NewContainer creates a service container with properly initialized dependencies.
func NewContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	userCache cache.UserCache,
	sender email.EmailSender,
	avatars avatar.Uploader,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	tokenSvc := NewTokenService(cfg, repos.UserRepo, userCache)

	return &portssvc.ServiceContainer{
		Token:   tokenSvc,
		User:    NewUserService(cfg, repos.UserRepo, tokenSvc, sender, avatars, userCache, logger),
		Contact: NewContactService(repos.ContactRepo),
	}
}
