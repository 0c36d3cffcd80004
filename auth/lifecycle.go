package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/db"
	"github.com/veitlor/libram/events/event"
	"github.com/veitlor/libram/generator"
	"github.com/veitlor/libram/i18n"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const maxIterationCycles = 100

// LifecycleStore is the persistence surface of the account lifecycle
type LifecycleStore interface {
	IsRegistered(ctx context.Context, username string, email string) (bool, error)
	InsertUser(
		ctx context.Context,
		username string,
		email string,
		passwordHash string,
		role string,
		libraryID *int,
		confirmToken *string,
	) (uuid.UUID, error)
	ConfirmTokenExists(ctx context.Context, token string) (bool, error)
	ConsumeConfirmToken(
		ctx context.Context,
		confirmToken string,
		window time.Duration,
	) (*db.UserData, error)
	ManualConfirmUser(ctx context.Context, id uuid.UUID) error
	UserByID(ctx context.Context, id uuid.UUID) (*db.UserData, error)
	IDFromEmail(ctx context.Context, email string) (bool, uuid.UUID, error)
	CreatePasswordReset(
		ctx context.Context,
		userID uuid.UUID,
		token string,
		expires time.Time,
	) error
	ConsumePasswordReset(
		ctx context.Context,
		token string,
		passwordHash string,
	) (uuid.UUID, error)
	RevokeRememberTokensForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UnlockUser(ctx context.Context, id uuid.UUID) (bool, error)
}

// LifecycleMailer delivers verification and reset emails
type LifecycleMailer interface {
	SendVerificationMail(email string, token string, language string) error
	SendPasswordResetMail(email string, token string, language string) error
}

// AccountLifecycle drives a user record from creation over email
// verification to the active state and owns the password reset flow
type AccountLifecycle struct {
	store      LifecycleStore
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     LifecycleMailer
	gen        *generator.RandomTokenGenerator
	dispatcher Dispatcher
}

func NewAccountLifecycle(store LifecycleStore,
	log *zap.Logger,
	cfg *config.Configuration,
	mailer LifecycleMailer,
	dispatcher Dispatcher) *AccountLifecycle {
	return &AccountLifecycle{
		store:      store,
		log:        log,
		cfg:        cfg,
		mailer:     mailer,
		gen:        generator.New(),
		dispatcher: dispatcher,
	}
}

func (g *AccountLifecycle) currentLocale(ctx context.Context) string {
	locale := ctx.Value(i18n.ContextLangKey)
	if locale != nil && len(locale.(string)) == 2 {
		return locale.(string)
	}
	if len(g.cfg.Behaviour.DefaultLocale) == 2 {
		return g.cfg.Behaviour.DefaultLocale
	}
	return "en"
}

func (g *AccountLifecycle) uniqueConfirmToken(ctx context.Context) (string, error) {
	for i := 0; i < maxIterationCycles; i++ {
		token := g.gen.CreateSecureToken()
		exists, err := g.store.ConfirmTokenExists(ctx, string(token))
		if err != nil {
			return "", err
		}
		if !exists {
			return string(token), nil
		}
	}
	return "", ErrTokenGenTimeout
}

// Register creates a new user record. Unless auto confirm is configured
// the account starts out pending with a verification token mailed to
// the given address, good for the configured verification window.
func (g *AccountLifecycle) Register(
	ctx context.Context,
	username string,
	email string,
	password string,
	role Role,
	libraryID *int,
) (uuid.UUID, error) {
	if !role.Valid() {
		return uuid.UUID{}, ErrEntityDoesNotExist
	}
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return uuid.UUID{}, ErrPasswordGuidelines
	}
	taken, err := g.store.IsRegistered(ctx, username, email)
	if err != nil {
		g.log.Error("unexpected data store error", zap.Error(err))
		return uuid.UUID{}, err
	}
	if taken {
		return uuid.UUID{}, ErrEntityAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.UUID{}, err
	}
	var confirmToken *string
	if !g.cfg.Behaviour.AutoConfirmUsers {
		token, err := g.uniqueConfirmToken(ctx)
		if err != nil {
			return uuid.UUID{}, err
		}
		confirmToken = &token
	}
	id, err := g.store.InsertUser(
		ctx,
		username,
		email,
		string(hash),
		role.String(),
		libraryID,
		confirmToken,
	)
	if err != nil {
		g.log.Error("could not insert user", zap.Error(err))
		return uuid.UUID{}, err
	}
	g.dispatcher.Dispatch(&event.UserSignup{
		UserID:    id,
		LibraryID: libraryID,
		Email:     email,
	})
	if confirmToken == nil {
		g.dispatcher.Dispatch(&event.UserConfirmed{
			UserID:        id,
			AutoConfirmed: true,
		})
		return id, nil
	}
	err = g.mailer.SendVerificationMail(email, *confirmToken, g.currentLocale(ctx))
	if err != nil {
		g.log.Error("could not deliver verification mail", zap.Error(err))
		return id, ErrDeliveryFailed
	}
	g.dispatcher.Dispatch(&event.EmailVerificationSent{
		UserID:       id,
		Email:        email,
		ConfirmToken: *confirmToken,
		Sent:         time.Now().UTC(),
	})
	return id, nil
}

// ConsumeVerificationToken flips the pending account holding the token
// to active. Consumption is at most once, a replay of an already used
// token fails with ErrTokenInvalid. Tokens older than the verification
// window fail with ErrTokenExpired and leave the account pending.
func (g *AccountLifecycle) ConsumeVerificationToken(
	ctx context.Context,
	token string,
) (*db.UserData, error) {
	ud, err := g.store.ConsumeConfirmToken(ctx, token, g.cfg.Behaviour.VerificationWindow)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		if errors.Is(err, db.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return nil, err
	}
	g.dispatcher.Dispatch(&event.UserConfirmed{
		UserID:       ud.ID,
		ConfirmToken: token,
	})
	return ud, nil
}

// ConfirmUser activates a pending account without a token, used by operators
func (g *AccountLifecycle) ConfirmUser(ctx context.Context, id uuid.UUID) error {
	err := g.store.ManualConfirmUser(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEntityDoesNotExist
		}
		return err
	}
	g.dispatcher.Dispatch(&event.UserConfirmed{
		UserID: id,
	})
	return nil
}

// InitiatePasswordReset issues a reset token to the accounts email.
// Unknown addresses report ErrEntityDoesNotExist, callers facing users
// must collapse that into the same response as a successful request.
func (g *AccountLifecycle) InitiatePasswordReset(ctx context.Context, email string) error {
	found, id, err := g.store.IDFromEmail(ctx, email)
	if err != nil {
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	if !found {
		return ErrEntityDoesNotExist
	}
	ud, err := g.store.UserByID(ctx, id)
	if err != nil {
		return err
	}
	if ud.Status == db.UserStatusPending {
		// pending accounts have no usable password to reset
		return ErrEntityDoesNotExist
	}
	token := string(g.gen.CreateSecureToken())
	expires := time.Now().UTC().Add(g.cfg.Behaviour.ResetTokenExpiry)
	err = g.store.CreatePasswordReset(ctx, id, token, expires)
	if err != nil {
		g.log.Error("could not store password reset", zap.Error(err))
		return err
	}
	err = g.mailer.SendPasswordResetMail(email, token, g.currentLocale(ctx))
	if err != nil {
		g.log.Error("could not deliver password reset mail", zap.Error(err))
		return ErrDeliveryFailed
	}
	g.dispatcher.Dispatch(&event.UserPasswordResetRequested{
		UserID: id,
	})
	g.dispatcher.Dispatch(&event.EmailPasswordResetSent{
		UserID: id,
		Email:  email,
		Sent:   time.Now().UTC(),
	})
	return nil
}

// ConsumePasswordResetToken claims the reset token and replaces the
// password in one atomic step, the second of two racing requests fails
// with ErrTokenInvalid. Every open remember token of the user is
// revoked along the way.
func (g *AccountLifecycle) ConsumePasswordResetToken(
	ctx context.Context,
	token string,
	newPassword string,
) error {
	if len(newPassword) < g.cfg.Behaviour.PasswordMinLength {
		return ErrPasswordGuidelines
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userID, err := g.store.ConsumePasswordReset(ctx, token, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrTokenInvalid
		}
		if errors.Is(err, db.ErrTokenExpired) {
			return ErrTokenExpired
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	_, err = g.store.RevokeRememberTokensForUser(ctx, userID)
	if err != nil {
		g.log.Error("could not revoke remember tokens", zap.Error(err))
	}
	g.dispatcher.Dispatch(&event.UserPasswordResetUsed{
		UserID: userID,
		Token:  token,
	})
	g.dispatcher.Dispatch(&event.UserPasswordChanged{
		UserID: userID,
	})
	return nil
}

// UnlockUser lifts a lockout ahead of time, used by operators
func (g *AccountLifecycle) UnlockUser(ctx context.Context, id uuid.UUID) error {
	unlocked, err := g.store.UnlockUser(ctx, id)
	if err != nil {
		return err
	}
	if !unlocked {
		return ErrEntityDoesNotExist
	}
	g.dispatcher.Dispatch(&event.UserUnlocked{
		UserID: id,
	})
	return nil
}
