package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEntityDoesNotExist  = errors.New("entity does not exist")
	ErrEntityAlreadyExists = errors.New("entity already exists in system")
	// ErrInvalidCredentials is the generic credential rejection, callers
	// must never tell apart an unknown identifier from a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnverified         = errors.New("account email is not verified")
	ErrMalformedCode      = errors.New("code does not match the expected format")
	ErrCodeExpired        = errors.New("no valid code outstanding")
	ErrCodeMismatch       = errors.New("supplied code does not match")
	ErrTooManyAttempts    = errors.New("code attempt budget exhausted")
	ErrTokenInvalid       = errors.New("supplied token is not valid")
	ErrTokenExpired       = errors.New("supplied token has expired")
	ErrDeliveryFailed     = errors.New("could not deliver notification email")
	ErrTokenGenTimeout    = errors.New("could not generate a token within given cycles")
	ErrPasswordGuidelines = errors.New("password doesnt match password guidelines")
)

// LockedError rejects credential verification until Until has passed
type LockedError struct {
	Until time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account is locked until %s", e.Until.Format(time.RFC3339))
}

// Remaining is the lockout time left, clamped at zero
func (e *LockedError) Remaining() time.Duration {
	d := time.Until(e.Until)
	if d < 0 {
		return 0
	}
	return d
}

// CredentialsError is a wrong password with attempts left before lockout
type CredentialsError struct {
	AttemptsRemaining int
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.AttemptsRemaining)
}

func (e *CredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// MismatchError is a wrong second factor code with attempts left
type MismatchError struct {
	AttemptsRemaining int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("code mismatch, %d attempts remaining", e.AttemptsRemaining)
}

func (e *MismatchError) Unwrap() error {
	return ErrCodeMismatch
}
