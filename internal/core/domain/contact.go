package domain

import "time"

// Contact represents a single address-book entry owned by a user.
type Contact struct {
	ContactID      string    `json:"contactID"` // Primary key (UUID)
	UserID         string    `json:"-"`         // Owning user
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	Birthday       time.Time `json:"birthday"`
	AdditionalInfo string    `json:"additionalInfo,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// BirthdayThisYear returns the contact's birthday mapped onto the given year.
func (c Contact) BirthdayThisYear(year int) time.Time {
	return time.Date(year, c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, c.Birthday.Location())
}
