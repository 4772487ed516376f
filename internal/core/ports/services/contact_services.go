package services

import (
	"context"

	"github.com/vkravets/contacts_api/internal/core/domain"
	"github.com/vkravets/contacts_api/internal/dto"
)

// ContactSvcFacade defines the interface for the per-user contact store.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Contact, error)
	GetContact(ctx context.Context, userID, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, userID, contactID string, req dto.ContactRequest) (*domain.Contact, error)
	DeleteContact(ctx context.Context, userID, contactID string) error
	SearchContacts(ctx context.Context, userID string, params dto.SearchContactsParams) ([]domain.Contact, error)

	// UpcomingBirthdays returns the user's contacts whose birthday, mapped onto the
	// current calendar year, falls within the closed interval [0, 7] days from today.
	UpcomingBirthdays(ctx context.Context, userID string) ([]domain.Contact, error)
}
