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
	"go.uber.org/zap"
)

// SessionStore is the persistence surface of the session establisher
type SessionStore interface {
	SetLastSignIn(ctx context.Context, id uuid.UUID) error
	UserByID(ctx context.Context, id uuid.UUID) (*db.UserData, error)
	LibraryByID(ctx context.Context, id int) (*db.LibraryData, error)
	InsertRememberToken(
		ctx context.Context,
		userID uuid.UUID,
		token string,
		expires time.Time,
	) (int, error)
	RedeemRememberToken(ctx context.Context, token string) (uuid.UUID, error)
	RevokeRememberToken(ctx context.Context, token string) (bool, error)
}

// SessionContext is the authenticated runtime identity handed to the
// session host, it carries everything authorization and display need
type SessionContext struct {
	UserID      uuid.UUID
	Username    string
	Email       string
	Role        Role
	LibraryID   *int
	DisplayName *string
	AvatarPath  *string
	Phone       *string
	Destination Destination
	IssuedAt    time.Time
}

// EstablishedSession is a finished login, the remember token is only
// set when the caller asked to be remembered
type EstablishedSession struct {
	Context       *SessionContext
	RememberToken *string
}

// SessionEstablisher builds the session context after all factors
// passed and owns the server side remember token lifecycle
type SessionEstablisher struct {
	store      SessionStore
	log        *zap.Logger
	cfg        *config.Configuration
	routing    RoutingPolicy
	gen        *generator.RandomTokenGenerator
	dispatcher Dispatcher
}

func NewSessionEstablisher(store SessionStore,
	log *zap.Logger,
	cfg *config.Configuration,
	dispatcher Dispatcher) *SessionEstablisher {
	return &SessionEstablisher{
		store:      store,
		log:        log,
		cfg:        cfg,
		routing:    RoutingPolicy{},
		gen:        generator.New(),
		dispatcher: dispatcher,
	}
}

func (g *SessionEstablisher) Routing() RoutingPolicy {
	return g.routing
}

// Establish copies the users identity into a fresh session context,
// stamps the last sign in and emits the login audit event. Audit and
// timestamp writes are log-and-continue, they never fail the login.
func (g *SessionEstablisher) Establish(
	ctx context.Context,
	ud *db.UserData,
	remember bool,
	sourceIP string,
	userAgent string,
) (*EstablishedSession, error) {
	err := g.store.SetLastSignIn(ctx, ud.ID)
	if err != nil {
		g.log.Error("unable to set last sign in", zap.Error(err))
	}
	libraryActive := true
	if ud.LibraryID != nil {
		lib, err := g.store.LibraryByID(ctx, *ud.LibraryID)
		if err != nil {
			g.log.Error("unable to load library", zap.Error(err))
			libraryActive = false
		} else {
			libraryActive = lib.SubscriptionActive(time.Now().UTC())
		}
	}
	role := Role(ud.Role)
	sc := &SessionContext{
		UserID:      ud.ID,
		Username:    ud.Username,
		Email:       ud.Email,
		Role:        role,
		LibraryID:   ud.LibraryID,
		DisplayName: ud.DisplayName,
		AvatarPath:  ud.AvatarPath,
		Phone:       ud.Phone,
		Destination: g.routing.PostLoginDestination(role, libraryActive),
		IssuedAt:    time.Now().UTC(),
	}
	g.dispatcher.Dispatch(&event.UserLogin{
		UserID:    ud.ID,
		LibraryID: ud.LibraryID,
		Role:      ud.Role,
		SourceIP:  sourceIP,
		UserAgent: userAgent,
	})
	established := &EstablishedSession{Context: sc}
	if remember {
		token, err := g.issueRememberToken(ctx, ud.ID)
		if err != nil {
			// a failed remember token never fails the login itself
			g.log.Error("unable to issue remember token", zap.Error(err))
		} else {
			established.RememberToken = &token
		}
	}
	return established, nil
}

func (g *SessionEstablisher) issueRememberToken(
	ctx context.Context,
	userID uuid.UUID,
) (string, error) {
	token := string(g.gen.CreateSecureToken())
	expires := time.Now().UTC().Add(g.cfg.JWT.RememberMeDuration)
	_, err := g.store.InsertRememberToken(ctx, userID, token, expires)
	if err != nil {
		return "", err
	}
	g.dispatcher.Dispatch(&event.RememberTokenIssued{
		UserID:    userID,
		ExpiresAt: expires,
	})
	return token, nil
}

// EstablishFromRememberToken redeems a remember token and starts a
// fresh session, rotating in a new token. Redemption is single use so
// a stolen replay after the legitimate client fails loudly.
func (g *SessionEstablisher) EstablishFromRememberToken(
	ctx context.Context,
	token string,
	sourceIP string,
	userAgent string,
) (*EstablishedSession, error) {
	userID, err := g.store.RedeemRememberToken(ctx, token)
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
	ud, err := g.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	provider := &userLogin{ud: ud}
	if !provider.CanLogin() {
		return nil, ErrTokenInvalid
	}
	g.dispatcher.Dispatch(&event.RememberTokenRedeemed{
		UserID: userID,
	})
	return g.Establish(ctx, ud, true, sourceIP, userAgent)
}

// Logout revokes the remember token if the client presented one,
// discarding the session token itself is up to the session host
func (g *SessionEstablisher) Logout(ctx context.Context, rememberToken string) error {
	if rememberToken == "" {
		return nil
	}
	_, err := g.store.RevokeRememberToken(ctx, rememberToken)
	if err != nil {
		g.log.Error("unable to revoke remember token", zap.Error(err))
		return err
	}
	return nil
}
