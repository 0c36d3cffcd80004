package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/db"
)

// CredentialVerifier checks the password factor and applies lockout
type CredentialVerifier interface {
	Verify(ctx context.Context, identifier string, password string) (*db.UserData, error)
}

// Challenger drives the emailed second factor codes
type Challenger interface {
	Issue(ctx context.Context, user *db.UserData) error
	Reissue(ctx context.Context, user *db.UserData) error
	Verify(ctx context.Context, userID uuid.UUID, submitted string) error
}

// Lifecycler owns account verification and password reset flows
type Lifecycler interface {
	ConsumeVerificationToken(ctx context.Context, token string) (*db.UserData, error)
	InitiatePasswordReset(ctx context.Context, email string) error
	ConsumePasswordResetToken(ctx context.Context, token string, newPassword string) error
}

// Establisher finishes logins into session contexts
type Establisher interface {
	Establish(
		ctx context.Context,
		ud *db.UserData,
		remember bool,
		sourceIP string,
		userAgent string,
	) (*auth.EstablishedSession, error)
	EstablishFromRememberToken(
		ctx context.Context,
		token string,
		sourceIP string,
		userAgent string,
	) (*auth.EstablishedSession, error)
	Logout(ctx context.Context, rememberToken string) error
	Routing() auth.RoutingPolicy
}

// UserLoader fetches user records for the second factor completion
type UserLoader interface {
	UserByID(ctx context.Context, id uuid.UUID) (*db.UserData, error)
}

// TokenIssuer is used to issue and sign the flow and session tokens
type TokenIssuer interface {
	IssueSessionToken(sc *auth.SessionContext) (jwt.Token, error)
	IssuePendingToken(pending *auth.PendingLogin, validity time.Duration) (jwt.Token, error)
	Sign(token jwt.Token) ([]byte, error)
}

// TokenVerifier is used to verify issued tokens
type TokenVerifier interface {
	ParseAndValidate(raw string) (jwt.Token, error)
	PendingFromToken(token jwt.Token) (*auth.PendingLogin, error)
	SessionFromToken(token jwt.Token) (*auth.SessionContext, error)
}

// Dependencies bundles everything the account resource needs
type Dependencies struct {
	Verifier  CredentialVerifier
	Challenge Challenger
	Lifecycle Lifecycler
	Session   Establisher
	Users     UserLoader
	Issuer    TokenIssuer
	Tokens    TokenVerifier
}
