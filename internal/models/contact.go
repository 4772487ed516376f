package models

import (
	"database/sql"
	"time"
)

// Contact mirrors a row of the contacts table.
type Contact struct {
	ContactID      string         `db:"contact_id"`
	UserID         string         `db:"user_id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	Email          string         `db:"email"`
	PhoneNumber    string         `db:"phone_number"`
	Birthday       time.Time      `db:"birthday"`
	AdditionalInfo sql.NullString `db:"additional_info"`
	CreatedAt      time.Time      `db:"created_at"`
	LastUpdatedAt  time.Time      `db:"last_updated_at"`
}
