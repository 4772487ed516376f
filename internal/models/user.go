package models

import (
	"database/sql"
	"time"
)

// User mirrors a row of the users table.
type User struct {
	UserID           string         `db:"user_id"`
	Username         string         `db:"username"`
	Email            string         `db:"email"`
	PasswordHash     string         `db:"password_hash"`
	Confirmed        bool           `db:"confirmed"`
	AvatarURL        sql.NullString `db:"avatar_url"`
	RefreshTokenHash sql.NullString `db:"refresh_token_hash"`
	CreatedAt        time.Time      `db:"created_at"`
}
