package tables

import "time"

// LibraryTable represents the libraries table, the tenant of the system
type LibraryTable struct {
	ID                   int        `db:"id"                     fiql:"id,db:id"`
	Name                 string     `db:"name"                   fiql:"name,db:name"`
	Slug                 string     `db:"slug"                   fiql:"slug,db:slug"`
	SubscriptionExpires  *time.Time `db:"subscription_expires"   fiql:"subscription_expires,db:subscription_expires"`
	CreatedAt            time.Time  `db:"created_at"             fiql:"created_at,db:created_at"`
	UpdatedAt            *time.Time `db:"updated_at,omitempty"`
}
