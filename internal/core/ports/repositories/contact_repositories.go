package repositories

import (
	"context"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// ContactQuery carries the supported contact search criteria. The repository applies
// the first non-empty field, in declaration order.
type ContactQuery struct {
	FirstName string
	LastName  string
	Email     string
}

// ContactRepository defines persistence operations for contacts. Every operation is
// scoped to the owning user; a contact belonging to another user behaves exactly like
// a missing one.
type ContactRepository interface {
	SaveContact(ctx context.Context, contact domain.Contact) error

	// FindContactByID returns apperrors.ErrNotFound for missing or foreign-owned rows.
	FindContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error)

	FindContacts(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error)

	// UpdateContact returns apperrors.ErrNotFound when the row does not exist.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeleteContact returns apperrors.ErrNotFound when the row does not exist.
	DeleteContact(ctx context.Context, userID, contactID string) error

	SearchContacts(ctx context.Context, userID string, query ContactQuery) ([]domain.Contact, error)
}
