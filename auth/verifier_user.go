package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/veitlor/libram/db"
	"golang.org/x/crypto/bcrypt"
)

type userLogin struct {
	ud *db.UserData
}

// CanLogin returns true if the user is eligible for login
func (p *userLogin) CanLogin() bool {
	return !p.IsLocked() && p.IsConfirmed() && p.ud.Status == db.UserStatusActive
}

// IsLocked returns true if the user is locked
// this means there were too many failed login attempts recently
func (p *userLogin) IsLocked() bool {
	return p.ud.LockoutTill != nil && time.Now().UTC().Before(*p.ud.LockoutTill)
}

// IsConfirmed returns true if the users email address is verified
func (p *userLogin) IsConfirmed() bool {
	return p.ud.EmailConfirmed != nil
}

// ValidatePassword validates the users password
func (p *userLogin) ValidatePassword(password string) bool {
	res := bcrypt.CompareHashAndPassword(p.ud.PasswordHash, []byte(password))
	return res == nil
}

// Gets the current failed login count
func (p *userLogin) CurrentFailureCount() int {
	return p.ud.CurrentFailureCount
}

func (p *userLogin) ID() uuid.UUID {
	return p.ud.ID
}

func (p *userLogin) Role() Role {
	return Role(p.ud.Role)
}
