package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	"github.com/vkravets/contacts_api/internal/models"
)

type PgxContactRepository struct {
	db *pgxpool.Pool
}

func newPgxContactRepository(db *pgxpool.Pool) portsrepo.ContactRepository {
	return &PgxContactRepository{db: db}
}

// Ensure PgxContactRepository implements portsrepo.ContactRepository
var _ portsrepo.ContactRepository = (*PgxContactRepository)(nil)

func toModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:      d.ContactID,
		UserID:         d.UserID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		PhoneNumber:    d.PhoneNumber,
		Birthday:       d.Birthday,
		AdditionalInfo: sql.NullString{String: d.AdditionalInfo, Valid: d.AdditionalInfo != ""},
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
	}
}

func toDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:      m.ContactID,
		UserID:         m.UserID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		PhoneNumber:    m.PhoneNumber,
		Birthday:       m.Birthday,
		AdditionalInfo: m.AdditionalInfo.String,
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
	}
}

const selectContactColumns = `contact_id, user_id, first_name, last_name, email, phone_number, birthday, additional_info, created_at, last_updated_at`

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.UserID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.PhoneNumber,
		&m.Birthday,
		&m.AdditionalInfo,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	contact := toDomainContact(m)
	return &contact, nil
}

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := toModelContact(contact)
	query := `
        INSERT INTO contacts (contact_id, user_id, first_name, last_name, email, phone_number, birthday, additional_info, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.ContactID,
		m.UserID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PhoneNumber,
		m.Birthday,
		m.AdditionalInfo,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + selectContactColumns + ` FROM contacts WHERE contact_id = $1 AND user_id = $2;`
	contact, err := scanContact(r.db.QueryRow(ctx, query, contactID, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}
	return contact, nil
}

// FindContacts lists a user's contacts ordered by creation time. A non-positive limit
// returns all of them.
func (r *PgxContactRepository) FindContacts(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error) {
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + selectContactColumns + `
        FROM contacts
        WHERE user_id = $1
        ORDER BY created_at DESC
        OFFSET $2`
	args := []any{userID, offset}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	query += `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	return collectContacts(rows)
}

func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := toModelContact(contact)
	query := `
        UPDATE contacts
        SET first_name = $3, last_name = $4, email = $5, phone_number = $6, birthday = $7, additional_info = $8, last_updated_at = $9
        WHERE contact_id = $1 AND user_id = $2;
    `
	tag, err := r.db.Exec(ctx, query,
		m.ContactID,
		m.UserID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PhoneNumber,
		m.Birthday,
		m.AdditionalInfo,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", contact.ContactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxContactRepository) DeleteContact(ctx context.Context, userID, contactID string) error {
	query := `DELETE FROM contacts WHERE contact_id = $1 AND user_id = $2;`
	tag, err := r.db.Exec(ctx, query, contactID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", contactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SearchContacts applies the first non-empty criterion as a case-insensitive match,
// mirroring the first-match-wins dispatch of the query endpoint.
func (r *PgxContactRepository) SearchContacts(ctx context.Context, userID string, q portsrepo.ContactQuery) ([]domain.Contact, error) {
	column, pattern := "", ""
	switch {
	case q.FirstName != "":
		column, pattern = "first_name", q.FirstName
	case q.LastName != "":
		column, pattern = "last_name", q.LastName
	case q.Email != "":
		column, pattern = "email", q.Email
	default:
		return []domain.Contact{}, nil
	}

	query := `
        SELECT ` + selectContactColumns + `
        FROM contacts
        WHERE user_id = $1 AND ` + column + ` ILIKE $2
        ORDER BY created_at DESC;`

	rows, err := r.db.Query(ctx, query, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by %s: %w", column, err)
	}
	defer rows.Close()

	return collectContacts(rows)
}

func collectContacts(rows pgx.Rows) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	for rows.Next() {
		var m models.Contact
		err := rows.Scan(
			&m.ContactID,
			&m.UserID,
			&m.FirstName,
			&m.LastName,
			&m.Email,
			&m.PhoneNumber,
			&m.Birthday,
			&m.AdditionalInfo,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, toDomainContact(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading contact rows: %w", err)
	}
	return contacts, nil
}
