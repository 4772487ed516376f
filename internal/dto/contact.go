package dto

import (
	"time"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// BirthdayLayout is the wire format for contact birthdays.
const BirthdayLayout = "2006-01-02"

// ContactRequest carries the create/update payload for a contact.
type ContactRequest struct {
	FirstName      string `json:"firstName" binding:"required,min=3,max=100"`
	LastName       string `json:"lastName" binding:"required,min=3,max=100"`
	Email          string `json:"email" binding:"required,email,max=100"`
	PhoneNumber    string `json:"phoneNumber" binding:"required,min=9,max=13"`
	Birthday       string `json:"birthday" binding:"required,datetime=2006-01-02,pastdate"`
	AdditionalInfo string `json:"additionalInfo"`
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// SearchContactsParams defines query parameters for contact search.
type SearchContactsParams struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
}

// ContactResponse is the public representation of a contact.
type ContactResponse struct {
	ContactID      string    `json:"contactID"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	Birthday       string    `json:"birthday"`
	AdditionalInfo string    `json:"additionalInfo,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToContactResponse converts a domain.Contact to its response DTO.
func ToContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:      contact.ContactID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		Email:          contact.Email,
		PhoneNumber:    contact.PhoneNumber,
		Birthday:       contact.Birthday.Format(BirthdayLayout),
		AdditionalInfo: contact.AdditionalInfo,
		CreatedAt:      contact.CreatedAt,
	}
}

// ToContactListResponse converts a slice of domain contacts to response DTOs.
func ToContactListResponse(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, len(contacts))
	for i := range contacts {
		out[i] = ToContactResponse(&contacts[i])
	}
	return out
}
