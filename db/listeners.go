package db

import (
	"github.com/veitlor/libram/db/tables"
	"github.com/veitlor/libram/events"
	"github.com/veitlor/libram/events/event"
	"go.uber.org/zap"
)

// Auditor is a way to write audit log events into a persistent store
type Auditor interface {
	addToAuditLog(event string, payload tables.MapStructure) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor, log *zap.Logger) []events.EventListener {
	return []events.EventListener{
		&userSignupListener{
			log:   log,
			store: store,
		},
		&userConfirmedListener{
			log:   log,
			store: store,
		},
		&userLockedListener{
			log:   log,
			store: store,
		},
		&userUnlockedListener{
			log:   log,
			store: store,
		},
		&userLoginListener{
			log:   log,
			store: store,
		},
		&userLoginFailedListener{
			log:   log,
			store: store,
		},
		&loginCodeIssuedListener{
			log:   log,
			store: store,
		},
		&loginCodeConsumedListener{
			log:   log,
			store: store,
		},
		&loginCodeExhaustedListener{
			log:   log,
			store: store,
		},
		&passwordResetRequestedListener{
			log:   log,
			store: store,
		},
		&passwordResetUsedListener{
			log:   log,
			store: store,
		},
		&passwordChangedListener{
			log:   log,
			store: store,
		},
		&rememberTokenIssuedListener{
			log:   log,
			store: store,
		},
		&rememberTokenRedeemedListener{
			log:   log,
			store: store,
		},
		&emailVerificationSentListener{
			log:   log,
			store: store,
		},
		&emailLoginCodeSentListener{
			log:   log,
			store: store,
		},
		&emailPasswordResetSentListener{
			log:   log,
			store: store,
		},
	}
}

func toString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

type userSignupListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userSignupListener) ForEvent() events.EventName {
	return event.UserSignupEvent
}

func (l *userSignupListener) Handle(ev events.Event) error {
	e := ev.(*event.UserSignup)
	payload := map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
	}
	if e.LibraryID != nil {
		payload["library_id"] = *e.LibraryID
	}
	err := l.store.addToAuditLog(string(l.ForEvent()), payload)
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userConfirmedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userConfirmedListener) ForEvent() events.EventName {
	return event.UserConfirmedEvent
}

func (l *userConfirmedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserConfirmed)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"auto_confirm":  toString(e.AutoConfirmed),
		"user_id":       e.UserID.String(),
		"confirm_token": e.ConfirmToken,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userLockedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userLockedListener) ForEvent() events.EventName {
	return event.UserLockedEvent
}

func (l *userLockedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserLocked)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id":      e.UserID.String(),
		"locked_until": e.LockedUntil.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userUnlockedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userUnlockedListener) ForEvent() events.EventName {
	return event.UserUnlockedEvent
}

func (l *userUnlockedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserUnlocked)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userLoginListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userLoginListener) ForEvent() events.EventName {
	return event.UserLoginEvent
}

func (l *userLoginListener) Handle(ev events.Event) error {
	e := ev.(*event.UserLogin)
	payload := map[string]interface{}{
		"user_id":    e.UserID.String(),
		"role":       e.Role,
		"source_ip":  e.SourceIP,
		"user_agent": e.UserAgent,
	}
	if e.LibraryID != nil {
		payload["library_id"] = *e.LibraryID
	}
	err := l.store.addToAuditLog(string(l.ForEvent()), payload)
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userLoginFailedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userLoginFailedListener) ForEvent() events.EventName {
	return event.UserLoginFailedEvent
}

func (l *userLoginFailedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserLoginFailed)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id":            e.UserID.String(),
		"attempts_remaining": e.AttemptsRemaining,
		"source_ip":          e.SourceIP,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type loginCodeIssuedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*loginCodeIssuedListener) ForEvent() events.EventName {
	return event.LoginCodeIssuedEvent
}

func (l *loginCodeIssuedListener) Handle(ev events.Event) error {
	e := ev.(*event.LoginCodeIssued)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id":    e.UserID.String(),
		"code_id":    e.CodeID,
		"expires_at": e.ExpiresAt.String(),
		"reissued":   toString(e.Reissued),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type loginCodeConsumedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*loginCodeConsumedListener) ForEvent() events.EventName {
	return event.LoginCodeConsumedEvent
}

func (l *loginCodeConsumedListener) Handle(ev events.Event) error {
	e := ev.(*event.LoginCodeConsumed)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"code_id": e.CodeID,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type loginCodeExhaustedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*loginCodeExhaustedListener) ForEvent() events.EventName {
	return event.LoginCodeExhaustedEvent
}

func (l *loginCodeExhaustedListener) Handle(ev events.Event) error {
	e := ev.(*event.LoginCodeExhausted)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"code_id": e.CodeID,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type passwordResetRequestedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*passwordResetRequestedListener) ForEvent() events.EventName {
	return event.UserPasswordResetRequestedEvent
}

func (l *passwordResetRequestedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserPasswordResetRequested)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type passwordResetUsedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*passwordResetUsedListener) ForEvent() events.EventName {
	return event.UserPasswordResetUsedEvent
}

func (l *passwordResetUsedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserPasswordResetUsed)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"token":   e.Token,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type passwordChangedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*passwordChangedListener) ForEvent() events.EventName {
	return event.UserPasswordChangedEvent
}

func (l *passwordChangedListener) Handle(ev events.Event) error {
	e := ev.(*event.UserPasswordChanged)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type rememberTokenIssuedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*rememberTokenIssuedListener) ForEvent() events.EventName {
	return event.RememberTokenIssuedEvent
}

func (l *rememberTokenIssuedListener) Handle(ev events.Event) error {
	e := ev.(*event.RememberTokenIssued)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id":    e.UserID.String(),
		"expires_at": e.ExpiresAt.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type rememberTokenRedeemedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*rememberTokenRedeemedListener) ForEvent() events.EventName {
	return event.RememberTokenRedeemedEvent
}

func (l *rememberTokenRedeemedListener) Handle(ev events.Event) error {
	e := ev.(*event.RememberTokenRedeemed)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type emailVerificationSentListener struct {
	store Auditor
	log   *zap.Logger
}

func (*emailVerificationSentListener) ForEvent() events.EventName {
	return event.EmailVerificationSentEvent
}

func (l *emailVerificationSentListener) Handle(ev events.Event) error {
	e := ev.(*event.EmailVerificationSent)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id":       e.UserID.String(),
		"email":         e.Email,
		"confirm_token": e.ConfirmToken,
		"sent":          e.Sent.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type emailLoginCodeSentListener struct {
	store Auditor
	log   *zap.Logger
}

func (*emailLoginCodeSentListener) ForEvent() events.EventName {
	return event.EmailLoginCodeSentEvent
}

func (l *emailLoginCodeSentListener) Handle(ev events.Event) error {
	e := ev.(*event.EmailLoginCodeSent)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
		"sent":    e.Sent.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type emailPasswordResetSentListener struct {
	store Auditor
	log   *zap.Logger
}

func (*emailPasswordResetSentListener) ForEvent() events.EventName {
	return event.EmailPasswordResetSentEvent
}

func (l *emailPasswordResetSentListener) Handle(ev events.Event) error {
	e := ev.(*event.EmailPasswordResetSent)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
		"sent":    e.Sent.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}
