package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vkravets/contacts_api/internal/core/domain"
	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/dto"
)

// birthdayWindowDays is the closed upper bound of the upcoming-birthday window.
const birthdayWindowDays = 7

type contactService struct {
	contactRepo portsrepo.ContactRepository
}

// NewContactService creates a new instance of contactService.
func NewContactService(contactRepo portsrepo.ContactRepository) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) CreateContact(ctx context.Context, userID string, req dto.ContactRequest) (*domain.Contact, error) {
	birthday, err := time.Parse(dto.BirthdayLayout, req.Birthday)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday %q: %w", req.Birthday, err)
	}

	now := time.Now()
	contact := domain.Contact{
		ContactID:      uuid.NewString(),
		UserID:         userID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Birthday:       birthday,
		AdditionalInfo: req.AdditionalInfo,
		CreatedAt:      now,
		LastUpdatedAt:  now,
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return &contact, nil
}

func (s *contactService) GetContact(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	return s.contactRepo.FindContactByID(ctx, userID, contactID)
}

func (s *contactService) ListContacts(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error) {
	return s.contactRepo.FindContacts(ctx, userID, limit, offset)
}

func (s *contactService) UpdateContact(ctx context.Context, userID, contactID string, req dto.ContactRequest) (*domain.Contact, error) {
	existing, err := s.contactRepo.FindContactByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	birthday, err := time.Parse(dto.BirthdayLayout, req.Birthday)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday %q: %w", req.Birthday, err)
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.PhoneNumber = req.PhoneNumber
	existing.Birthday = birthday
	existing.AdditionalInfo = req.AdditionalInfo
	existing.LastUpdatedAt = time.Now()

	if err := s.contactRepo.UpdateContact(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return existing, nil
}

func (s *contactService) DeleteContact(ctx context.Context, userID, contactID string) error {
	return s.contactRepo.DeleteContact(ctx, userID, contactID)
}

func (s *contactService) SearchContacts(ctx context.Context, userID string, params dto.SearchContactsParams) ([]domain.Contact, error) {
	return s.contactRepo.SearchContacts(ctx, userID, portsrepo.ContactQuery{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
	})
}

// UpcomingBirthdays returns contacts whose birthday falls within the next week,
// today included. The birthday is mapped onto the current calendar year, so a
// birthday that already passed this year does not match.
func (s *contactService) UpcomingBirthdays(ctx context.Context, userID string) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.FindContacts(ctx, userID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts for birthday window: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return filterUpcomingBirthdays(contacts, today, birthdayWindowDays), nil
}

// filterUpcomingBirthdays keeps contacts whose this-year birthday lies within the
// closed interval [0, windowDays] days from today.
func filterUpcomingBirthdays(contacts []domain.Contact, today time.Time, windowDays int) []domain.Contact {
	matched := []domain.Contact{}
	for _, c := range contacts {
		birthday := c.BirthdayThisYear(today.Year())
		daysLeft := int(birthday.Sub(today) / (24 * time.Hour))
		if daysLeft >= 0 && daysLeft <= windowDays {
			matched = append(matched, c)
		}
	}
	return matched
}
