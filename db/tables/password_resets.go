package tables

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetTable represents the password_resets table,
// deliberately its own table so reset tokens never share
// columns with verification tokens
type PasswordResetTable struct {
	ID        int       `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
