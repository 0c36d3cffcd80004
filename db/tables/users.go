package tables

import (
	"time"

	"github.com/google/uuid"
)

// UserTable represents the users table
type UserTable struct {
	ID                  uuid.UUID  `db:"id,omitempty"                    fiql:"id,db:id"`
	Username            string     `db:"username"                        fiql:"username,db:username"`
	Email               string     `db:"email"                           fiql:"email,db:email"`
	EmailConfirmed      *time.Time `db:"email_confirmed"`
	Password            string     `db:"password"                                                            json:"-"`
	Role                string     `db:"role"                            fiql:"role,db:role"`
	LibraryID           *int       `db:"library_id"                      fiql:"library_id,db:library_id"`
	Status              string     `db:"status"                          fiql:"status,db:status"`
	DisplayName         *string    `db:"display_name"`
	AvatarPath          *string    `db:"avatar_path"`
	Phone               *string    `db:"phone"`
	ConfirmToken        *string    `db:"confirm_token"                   fiql:"confirm_token,db:confirm_token"`
	ConfirmTokenCreated *time.Time `db:"confirm_token_created,omitempty"`
	CurrentFailureCount int        `db:"current_failure_count"`
	LockoutTill         *time.Time `db:"lockout_till"                    fiql:"lockout_till,db:lockout_till"`
	LastSignIn          *time.Time `db:"last_sign_in"`
	CreatedAt           time.Time  `db:"created_at"                      fiql:"created_at,db:created_at"`
	UpdatedAt           *time.Time `db:"updated_at,omitempty"            fiql:"updated_at,db:updated_at"`
}
