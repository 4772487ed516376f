package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	"github.com/vkravets/contacts_api/internal/models"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:           d.UserID,
		Username:         d.Username,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		Confirmed:        d.Confirmed,
		AvatarURL:        sql.NullString{String: d.AvatarURL, Valid: d.AvatarURL != ""},
		RefreshTokenHash: sql.NullString{String: d.RefreshTokenHash, Valid: d.RefreshTokenHash != ""},
		CreatedAt:        d.CreatedAt,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:           m.UserID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		Confirmed:        m.Confirmed,
		AvatarURL:        m.AvatarURL.String,
		RefreshTokenHash: m.RefreshTokenHash.String,
		CreatedAt:        m.CreatedAt,
	}
}

const uniqueViolationCode = "23505"

// mapUserConstraintError translates unique violations into the signup conflict errors.
func mapUserConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return apperrors.ErrUsernameExists
		case strings.Contains(pgErr.ConstraintName, "email"):
			return apperrors.ErrEmailExists
		default:
			return apperrors.ErrDuplicate
		}
	}
	return err
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        INSERT INTO users (user_id, username, email, password_hash, confirmed, avatar_url, refresh_token_hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Username,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.Confirmed,
		modelUser.AvatarURL,
		modelUser.RefreshTokenHash,
		modelUser.CreatedAt,
	)
	if err != nil {
		if mapped := mapUserConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

const selectUserColumns = `user_id, username, email, password_hash, confirmed, avatar_url, refresh_token_hash, created_at`

func (r *PgxUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.Confirmed,
		&m.AvatarURL,
		&m.RefreshTokenHash,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	domainUser := toDomainUser(m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE username = $1;`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE email = $1;`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string) error {
	query := `UPDATE users SET refresh_token_hash = $2 WHERE user_id = $1;`
	tag, err := r.db.Exec(ctx, query, userID, refreshTokenHash)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RotateRefreshToken swaps the stored refresh token hash only if it still equals
// oldHash. The conditional WHERE clause makes the read-compare-write of a rotation a
// single atomic statement, so concurrent rotations of the same token cannot both win.
func (r *PgxUserRepository) RotateRefreshToken(ctx context.Context, userID string, oldHash, newHash string) (bool, error) {
	query := `UPDATE users SET refresh_token_hash = $3 WHERE user_id = $1 AND refresh_token_hash = $2;`
	tag, err := r.db.Exec(ctx, query, userID, oldHash, newHash)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token for user %s: %w", userID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL WHERE user_id = $1;`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	return nil
}

func (r *PgxUserRepository) ConfirmEmail(ctx context.Context, email string) error {
	query := `UPDATE users SET confirmed = TRUE WHERE email = $1;`
	tag, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*domain.User, error) {
	query := `
        UPDATE users SET avatar_url = $2 WHERE user_id = $1
        RETURNING ` + selectUserColumns + `;`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, userID, avatarURL))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update avatar for user %s: %w", userID, err)
	}
	return user, nil
}
