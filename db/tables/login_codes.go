package tables

import (
	"time"

	"github.com/google/uuid"
)

// LoginCodeTable represents the login_codes table,
// one row per emailed one-time login code
type LoginCodeTable struct {
	ID            int        `db:"id"`
	UserID        uuid.UUID  `db:"user_id"`
	Code          string     `db:"code"`
	Attempts      int        `db:"attempts"`
	ExpiresAt     time.Time  `db:"expires_at"`
	UsedAt        *time.Time `db:"used_at"`
	InvalidatedAt *time.Time `db:"invalidated_at"`
	CreatedAt     time.Time  `db:"created_at"`
}
