package tables

import (
	"time"

	"github.com/google/uuid"
)

// RememberTokenTable represents the remember_tokens table
type RememberTokenTable struct {
	ID         int        `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	Token      string     `db:"token"`
	ExpiresAt  time.Time  `db:"expires_at"`
	RedeemedAt *time.Time `db:"redeemed_at"`
	RevokedAt  *time.Time `db:"revoked_at"`
	CreatedAt  time.Time  `db:"created_at"`
}
