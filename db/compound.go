package db

import (
	"time"

	"github.com/google/uuid"
)

// UserData is the read model handed to the auth services,
// assembled from the users row
type UserData struct {
	ID                  uuid.UUID
	Username            string
	Email               string
	EmailConfirmed      *time.Time
	Role                string
	LibraryID           *int
	Status              string
	DisplayName         *string
	AvatarPath          *string
	Phone               *string
	PasswordHash        []byte
	CurrentFailureCount int
	LockoutTill         *time.Time
	LastSignIn          *time.Time
	CreatedAt           time.Time
}

// LibraryData is the read model of a tenant
type LibraryData struct {
	ID                  int
	Name                string
	Slug                string
	SubscriptionExpires *time.Time
	CreatedAt           time.Time
}

// SubscriptionActive reports whether the tenant subscription is live at the given instant
func (l *LibraryData) SubscriptionActive(at time.Time) bool {
	return l.SubscriptionExpires == nil || l.SubscriptionExpires.After(at)
}

// LoginCodeData is the read model of an emailed one-time login code
type LoginCodeData struct {
	ID        int
	UserID    uuid.UUID
	Code      string
	Attempts  int
	ExpiresAt time.Time
	IssuedAt  time.Time
}

type ListOptions struct {
	PageSize int
	Page     int
	Sort     string
	Query    string
}
