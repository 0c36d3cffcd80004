package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/db"
	"github.com/veitlor/libram/events"
	"github.com/veitlor/libram/events/event"
	"go.uber.org/zap"
)

// Dispatcher fans out domain events to the registered listeners
type Dispatcher interface {
	Dispatch(ev events.Event)
}

// VerifierStore is the persistence surface of the credential verifier
type VerifierStore interface {
	UserByIdentifier(ctx context.Context, identifier string) (*db.UserData, error)
	RecordFailedAttempt(ctx context.Context, id uuid.UUID) (int, error)
	LockUser(ctx context.Context, id uuid.UUID, until time.Time) (bool, error)
	ResetFailureState(ctx context.Context, id uuid.UUID) error
}

// CredentialVerifier checks submitted credentials and applies the
// lockout policy, every attempt is persisted before the outcome is
// reported so counters survive a crash between attempts
type CredentialVerifier struct {
	store      VerifierStore
	log        *zap.Logger
	cfg        *config.BehaviourConfiguration
	dispatcher Dispatcher
}

func NewCredentialVerifier(store VerifierStore,
	log *zap.Logger,
	cfg *config.BehaviourConfiguration,
	dispatcher Dispatcher) *CredentialVerifier {
	return &CredentialVerifier{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

// Verify checks the identifier and password pair.
// Outcomes: ErrEntityDoesNotExist (unknown identifier), LockedError,
// ErrUnverified, CredentialsError (wrong password, attempts left) or
// the user record on success.
func (g *CredentialVerifier) Verify(
	ctx context.Context,
	identifier string,
	password string,
) (*db.UserData, error) {
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	ud, err := g.store.UserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEntityDoesNotExist
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return nil, err
	}
	provider := &userLogin{ud: ud}
	if provider.IsLocked() {
		return nil, &LockedError{Until: *ud.LockoutTill}
	}
	if !provider.IsConfirmed() || ud.Status == db.UserStatusPending {
		return nil, ErrUnverified
	}
	if !provider.ValidatePassword(password) {
		return nil, g.registerFailure(ctx, provider)
	}
	err = g.store.ResetFailureState(ctx, provider.ID())
	if err != nil {
		g.log.Error("unable to reset failure count", zap.Error(err))
	}
	return ud, nil
}

func (g *CredentialVerifier) registerFailure(
	ctx context.Context,
	provider *userLogin,
) error {
	count, err := g.store.RecordFailedAttempt(ctx, provider.ID())
	if err != nil {
		g.log.Error("unable to record failed attempt", zap.Error(err))
		return ErrInvalidCredentials
	}
	if g.cfg.AutoLockoutCount > 0 && count >= g.cfg.AutoLockoutCount {
		until := time.Now().UTC().Add(g.cfg.AutoLockoutDuration)
		locked, err := g.store.LockUser(ctx, provider.ID(), until)
		if err != nil {
			g.log.Error("could not lock user after failure count exceeded", zap.Error(err))
		}
		if locked {
			g.dispatcher.Dispatch(&event.UserLocked{
				UserID:      provider.ID(),
				LockedUntil: until,
			})
		}
		return &LockedError{Until: until}
	}
	remaining := g.cfg.AutoLockoutCount - count
	g.dispatcher.Dispatch(&event.UserLoginFailed{
		UserID:            provider.ID(),
		AttemptsRemaining: remaining,
	})
	return &CredentialsError{AttemptsRemaining: remaining}
}
