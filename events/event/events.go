package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/veitlor/libram/events"
)

const (
	UserSignupEvent    events.EventName = "user_signup"
	UserConfirmedEvent events.EventName = "user_confirmed"

	UserLockedEvent   events.EventName = "user_locked"
	UserUnlockedEvent events.EventName = "user_unlocked"

	UserLoginEvent       events.EventName = "user_login"
	UserLoginFailedEvent events.EventName = "user_login_failed"

	LoginCodeIssuedEvent    events.EventName = "login_code_issued"
	LoginCodeConsumedEvent  events.EventName = "login_code_consumed"
	LoginCodeExhaustedEvent events.EventName = "login_code_exhausted"

	UserPasswordResetRequestedEvent events.EventName = "user_password_reset_requested"
	UserPasswordResetUsedEvent      events.EventName = "user_password_reset_used"
	UserPasswordChangedEvent        events.EventName = "user_password_changed"

	RememberTokenIssuedEvent   events.EventName = "remember_token_issued"
	RememberTokenRedeemedEvent events.EventName = "remember_token_redeemed"

	EmailVerificationSentEvent  events.EventName = "email_verification_sent"
	EmailLoginCodeSentEvent     events.EventName = "email_login_code_sent"
	EmailPasswordResetSentEvent events.EventName = "email_password_reset_sent"
)

type UserSignup struct {
	UserID    uuid.UUID
	LibraryID *int
	Email     string
}

func (*UserSignup) Name() events.EventName { return UserSignupEvent }

type UserConfirmed struct {
	UserID        uuid.UUID
	AutoConfirmed bool
	ConfirmToken  string
}

func (*UserConfirmed) Name() events.EventName { return UserConfirmedEvent }

type UserLocked struct {
	UserID      uuid.UUID
	LockedUntil time.Time
}

func (*UserLocked) Name() events.EventName { return UserLockedEvent }

type UserUnlocked struct {
	UserID uuid.UUID
}

func (*UserUnlocked) Name() events.EventName { return UserUnlockedEvent }

type UserLogin struct {
	UserID    uuid.UUID
	LibraryID *int
	Role      string
	SourceIP  string
	UserAgent string
}

func (*UserLogin) Name() events.EventName { return UserLoginEvent }

type UserLoginFailed struct {
	UserID            uuid.UUID
	AttemptsRemaining int
	SourceIP          string
}

func (*UserLoginFailed) Name() events.EventName { return UserLoginFailedEvent }

type LoginCodeIssued struct {
	UserID    uuid.UUID
	CodeID    int
	ExpiresAt time.Time
	Reissued  bool
}

func (*LoginCodeIssued) Name() events.EventName { return LoginCodeIssuedEvent }

type LoginCodeConsumed struct {
	UserID uuid.UUID
	CodeID int
}

func (*LoginCodeConsumed) Name() events.EventName { return LoginCodeConsumedEvent }

type LoginCodeExhausted struct {
	UserID uuid.UUID
	CodeID int
}

func (*LoginCodeExhausted) Name() events.EventName { return LoginCodeExhaustedEvent }

type UserPasswordResetRequested struct {
	UserID uuid.UUID
}

func (*UserPasswordResetRequested) Name() events.EventName {
	return UserPasswordResetRequestedEvent
}

type UserPasswordResetUsed struct {
	UserID uuid.UUID
	Token  string
}

func (*UserPasswordResetUsed) Name() events.EventName { return UserPasswordResetUsedEvent }

type UserPasswordChanged struct {
	UserID uuid.UUID
}

func (*UserPasswordChanged) Name() events.EventName { return UserPasswordChangedEvent }

type RememberTokenIssued struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

func (*RememberTokenIssued) Name() events.EventName { return RememberTokenIssuedEvent }

type RememberTokenRedeemed struct {
	UserID uuid.UUID
}

func (*RememberTokenRedeemed) Name() events.EventName { return RememberTokenRedeemedEvent }

type EmailVerificationSent struct {
	UserID       uuid.UUID
	Email        string
	ConfirmToken string
	Sent         time.Time
}

func (*EmailVerificationSent) Name() events.EventName { return EmailVerificationSentEvent }

type EmailLoginCodeSent struct {
	UserID uuid.UUID
	Email  string
	Sent   time.Time
}

func (*EmailLoginCodeSent) Name() events.EventName { return EmailLoginCodeSentEvent }

type EmailPasswordResetSent struct {
	UserID uuid.UUID
	Email  string
	Sent   time.Time
}

func (*EmailPasswordResetSent) Name() events.EventName { return EmailPasswordResetSentEvent }
