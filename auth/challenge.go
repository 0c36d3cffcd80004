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
)

// ChallengeStore is the persistence surface of the second factor challenge
type ChallengeStore interface {
	InsertLoginCode(
		ctx context.Context,
		userID uuid.UUID,
		code string,
		expires time.Time,
	) (int, error)
	LatestValidCode(ctx context.Context, userID uuid.UUID) (*db.LoginCodeData, error)
	IncrementCodeAttempts(ctx context.Context, codeID int) (int, error)
	MarkCodeUsed(ctx context.Context, codeID int) (bool, error)
}

// CodeSender delivers the emitted code to the user
type CodeSender interface {
	SendLoginCodeMail(email string, code string, expiry time.Duration, language string) error
}

// TwoFactorChallenge issues and checks short lived emailed digit codes
type TwoFactorChallenge struct {
	store      ChallengeStore
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     CodeSender
	gen        *generator.RandomTokenGenerator
	dispatcher Dispatcher
}

func NewTwoFactorChallenge(store ChallengeStore,
	log *zap.Logger,
	cfg *config.Configuration,
	mailer CodeSender,
	dispatcher Dispatcher) *TwoFactorChallenge {
	return &TwoFactorChallenge{
		store:      store,
		log:        log,
		cfg:        cfg,
		mailer:     mailer,
		gen:        generator.New(),
		dispatcher: dispatcher,
	}
}

func (g *TwoFactorChallenge) currentLocale(ctx context.Context) string {
	locale := ctx.Value(i18n.ContextLangKey)
	if locale != nil && len(locale.(string)) == 2 {
		return locale.(string)
	}
	if len(g.cfg.Behaviour.DefaultLocale) == 2 {
		return g.cfg.Behaviour.DefaultLocale
	}
	return "en"
}

// Issue generates a fresh code for the user and mails it out.
// Any still open code of the user is invalidated alongside the insert,
// so the freshly issued code is the only redeemable one.
// A failed delivery surfaces as ErrDeliveryFailed.
func (g *TwoFactorChallenge) Issue(ctx context.Context, user *db.UserData) error {
	return g.issue(ctx, user, false)
}

// Reissue is the user facing resend, it behaves like Issue and does not
// require the prior code to be expired
func (g *TwoFactorChallenge) Reissue(ctx context.Context, user *db.UserData) error {
	return g.issue(ctx, user, true)
}

func (g *TwoFactorChallenge) issue(ctx context.Context, user *db.UserData, reissued bool) error {
	code := string(g.gen.CreateDigitCode(g.cfg.TwoFactor.CodeLength))
	expires := time.Now().UTC().Add(g.cfg.TwoFactor.CodeExpiry)
	id, err := g.store.InsertLoginCode(ctx, user.ID, code, expires)
	if err != nil {
		g.log.Error("could not store login code", zap.Error(err))
		return err
	}
	err = g.mailer.SendLoginCodeMail(
		user.Email,
		code,
		g.cfg.TwoFactor.CodeExpiry,
		g.currentLocale(ctx),
	)
	if err != nil {
		g.log.Error("could not deliver login code", zap.Error(err))
		return ErrDeliveryFailed
	}
	g.dispatcher.Dispatch(&event.LoginCodeIssued{
		UserID:    user.ID,
		CodeID:    id,
		ExpiresAt: expires,
		Reissued:  reissued,
	})
	g.dispatcher.Dispatch(&event.EmailLoginCodeSent{
		UserID: user.ID,
		Email:  user.Email,
		Sent:   time.Now().UTC(),
	})
	return nil
}

// Verify checks the submitted code against the users open code.
// Outcomes: ErrMalformedCode (bad format, nothing is touched),
// ErrCodeExpired (no open code or window passed), ErrTooManyAttempts
// (attempt budget spent, terminal for this code), MismatchError
// (wrong digits, attempts left) or nil on success.
func (g *TwoFactorChallenge) Verify(
	ctx context.Context,
	userID uuid.UUID,
	submitted string,
) error {
	if !g.wellFormed(submitted) {
		return ErrMalformedCode
	}
	code, err := g.store.LatestValidCode(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrCodeExpired
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	if code.ExpiresAt.Before(time.Now().UTC()) {
		return ErrCodeExpired
	}
	max := g.cfg.TwoFactor.MaxAttempts
	if code.Attempts >= max {
		return ErrTooManyAttempts
	}
	if code.Code != submitted {
		attempts, err := g.store.IncrementCodeAttempts(ctx, code.ID)
		if err != nil {
			g.log.Error("unable to increment code attempts", zap.Error(err))
			return err
		}
		if attempts >= max {
			g.dispatcher.Dispatch(&event.LoginCodeExhausted{
				UserID: userID,
				CodeID: code.ID,
			})
			return ErrTooManyAttempts
		}
		return &MismatchError{AttemptsRemaining: max - attempts}
	}
	used, err := g.store.MarkCodeUsed(ctx, code.ID)
	if err != nil {
		g.log.Error("unable to consume code", zap.Error(err))
		return err
	}
	if !used {
		// lost the race against a parallel verify
		return ErrCodeExpired
	}
	g.dispatcher.Dispatch(&event.LoginCodeConsumed{
		UserID: userID,
		CodeID: code.ID,
	})
	return nil
}

func (g *TwoFactorChallenge) wellFormed(submitted string) bool {
	if len(submitted) != g.cfg.TwoFactor.CodeLength {
		return false
	}
	for _, r := range submitted {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
