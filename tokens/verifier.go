package tokens

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/veitlor/libram/auth"
	"go.uber.org/zap"
)

func NewTokenVerifier(log *zap.Logger, issuer *TokenIssuer) *TokenVerifier {
	return &TokenVerifier{
		log:    log,
		issuer: issuer,
	}
}

type TokenVerifier struct {
	log    *zap.Logger
	issuer *TokenIssuer
}

// ParseAndValidate parses the raw token and validates signature and
// standard claims, it does not check the stage
func (t *TokenVerifier) ParseAndValidate(raw string) (jwt.Token, error) {
	if len(t.issuer.parseOptions) == 0 {
		return nil, errors.New("no valid JWT parsing options")
	}
	token, err := jwt.Parse([]byte(raw), t.issuer.parseOptions...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired()):
			return nil, ErrTokenExpired
		default:
			t.log.Debug("token parsing error", zap.Error(err))
			return nil, ErrInvalidToken
		}
	}
	return token, nil
}

// PendingFromToken unpacks a pending second factor token into the
// login snapshot it was built from
func (t *TokenVerifier) PendingFromToken(token jwt.Token) (*auth.PendingLogin, error) {
	if stageFromToken(token) != PendingTokenStage {
		return nil, ErrWrongStage
	}
	userID, err := uuid.Parse(token.Subject())
	if err != nil {
		return nil, ErrInvalidToken
	}
	pending := &auth.PendingLogin{
		UserID:    userID,
		StartedAt: token.IssuedAt(),
	}
	if v, ok := token.Get(ClaimUsername); ok {
		pending.Username = v.(string)
	}
	if v, ok := token.Get(ClaimEmail); ok {
		pending.Email = v.(string)
	}
	if v, ok := token.Get(ClaimRole); ok {
		pending.Role = auth.Role(v.(string))
	}
	if v, ok := token.Get(ClaimRemember); ok {
		pending.Remember = v.(bool)
	}
	if v, ok := token.Get(ClaimLibraryID); ok {
		pending.LibraryID = libraryIDFromClaim(v)
	}
	return pending, nil
}

// SessionFromToken unpacks an established session token
func (t *TokenVerifier) SessionFromToken(token jwt.Token) (*auth.SessionContext, error) {
	if stageFromToken(token) != SessionTokenStage {
		return nil, ErrWrongStage
	}
	userID, err := uuid.Parse(token.Subject())
	if err != nil {
		return nil, ErrInvalidToken
	}
	sc := &auth.SessionContext{
		UserID:   userID,
		IssuedAt: token.IssuedAt(),
	}
	if v, ok := token.Get(ClaimUsername); ok {
		sc.Username = v.(string)
	}
	if v, ok := token.Get(ClaimEmail); ok {
		sc.Email = v.(string)
	}
	if v, ok := token.Get(ClaimRole); ok {
		sc.Role = auth.Role(v.(string))
	}
	if v, ok := token.Get(ClaimDestination); ok {
		sc.Destination = auth.Destination(v.(string))
	}
	if v, ok := token.Get(ClaimLibraryID); ok {
		sc.LibraryID = libraryIDFromClaim(v)
	}
	return sc, nil
}

// FlowFromToken maps a raw bearer token onto the login state machine,
// an absent or rejected token is simply a logged out client
func (t *TokenVerifier) FlowFromToken(raw string) auth.FlowState {
	if raw == "" {
		return auth.LoggedOut()
	}
	token, err := t.ParseAndValidate(raw)
	if err != nil {
		return auth.LoggedOut()
	}
	switch stageFromToken(token) {
	case PendingTokenStage:
		pending, err := t.PendingFromToken(token)
		if err != nil {
			return auth.LoggedOut()
		}
		return auth.AwaitingTwoFactor(pending)
	case SessionTokenStage:
		sc, err := t.SessionFromToken(token)
		if err != nil {
			return auth.LoggedOut()
		}
		return auth.Authenticated(sc)
	}
	return auth.LoggedOut()
}

func stageFromToken(token jwt.Token) TokenStage {
	if v, ok := token.Get(ClaimStage); ok {
		if s, ok := v.(string); ok {
			return TokenStage(s)
		}
	}
	return ""
}

// claims round tripped through json arrive as float64
func libraryIDFromClaim(v interface{}) *int {
	switch n := v.(type) {
	case float64:
		id := int(n)
		return &id
	case int64:
		id := int(n)
		return &id
	case int:
		id := n
		return &id
	}
	return nil
}
