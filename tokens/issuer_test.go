package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/config"
	"go.uber.org/zap"
)

func testIssuer() *TokenIssuer {
	return NewIssuer(zap.NewNop(), &config.JWTConfiguration{
		Algorithm:      "HS512",
		Issuer:         "libram.test",
		Audience:       []string{"libram.test"},
		Expiry:         time.Minute * 15,
		HMACSigningKey: "EhX2GW0mwvflPfkrlDyAHv2XSkUCPuyb",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	assert := assert.New(t)
	issuer := testIssuer()
	verifier := NewTokenVerifier(zap.NewNop(), issuer)
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	libraryID := 7
	sc := &auth.SessionContext{
		UserID:      uid,
		Username:    "marion",
		Email:       "marion@example.com",
		Role:        auth.RoleLibrarian,
		LibraryID:   &libraryID,
		Destination: auth.DestinationLibrarianDesk,
		IssuedAt:    time.Now().UTC(),
	}

	token, err := issuer.IssueSessionToken(sc)
	assert.NoError(err)
	signed, err := issuer.Sign(token)
	assert.NoError(err)

	parsed, err := verifier.ParseAndValidate(string(signed))
	assert.NoError(err)
	got, err := verifier.SessionFromToken(parsed)
	assert.NoError(err)
	assert.Equal(uid, got.UserID)
	assert.Equal("marion", got.Username)
	assert.Equal("marion@example.com", got.Email)
	assert.Equal(auth.RoleLibrarian, got.Role)
	assert.Equal(auth.DestinationLibrarianDesk, got.Destination)
	if assert.NotNil(got.LibraryID) {
		assert.Equal(7, *got.LibraryID)
	}
}

func TestPendingTokenRoundTrip(t *testing.T) {
	assert := assert.New(t)
	issuer := testIssuer()
	verifier := NewTokenVerifier(zap.NewNop(), issuer)
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	pending := &auth.PendingLogin{
		UserID:    uid,
		Username:  "marion",
		Email:     "marion@example.com",
		Role:      auth.RoleMember,
		Remember:  true,
		StartedAt: time.Now().UTC(),
	}

	token, err := issuer.IssuePendingToken(pending, time.Minute*5)
	assert.NoError(err)
	signed, err := issuer.Sign(token)
	assert.NoError(err)

	parsed, err := verifier.ParseAndValidate(string(signed))
	assert.NoError(err)
	got, err := verifier.PendingFromToken(parsed)
	assert.NoError(err)
	assert.Equal(uid, got.UserID)
	assert.Equal(auth.RoleMember, got.Role)
	assert.True(got.Remember)
	assert.Nil(got.LibraryID)
}

func TestPendingTokenExpiresWithCodeWindow(t *testing.T) {
	assert := assert.New(t)
	issuer := testIssuer()
	verifier := NewTokenVerifier(zap.NewNop(), issuer)
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	pending := &auth.PendingLogin{
		UserID:    uid,
		StartedAt: time.Now().UTC().Add(-time.Minute * 10),
	}

	token, err := issuer.IssuePendingToken(pending, time.Minute*5)
	assert.NoError(err)
	signed, err := issuer.Sign(token)
	assert.NoError(err)

	_, err = verifier.ParseAndValidate(string(signed))
	assert.ErrorIs(err, ErrTokenExpired)
}

func TestStageMismatchIsRejected(t *testing.T) {
	assert := assert.New(t)
	issuer := testIssuer()
	verifier := NewTokenVerifier(zap.NewNop(), issuer)
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")

	pendingToken, err := issuer.IssuePendingToken(&auth.PendingLogin{
		UserID:    uid,
		StartedAt: time.Now().UTC(),
	}, time.Minute*5)
	assert.NoError(err)
	signed, err := issuer.Sign(pendingToken)
	assert.NoError(err)
	parsed, err := verifier.ParseAndValidate(string(signed))
	assert.NoError(err)

	// a pending token never passes for a session
	_, err = verifier.SessionFromToken(parsed)
	assert.ErrorIs(err, ErrWrongStage)

	sessionToken, err := issuer.IssueSessionToken(&auth.SessionContext{
		UserID:   uid,
		IssuedAt: time.Now().UTC(),
	})
	assert.NoError(err)
	signed, err = issuer.Sign(sessionToken)
	assert.NoError(err)
	parsed, err = verifier.ParseAndValidate(string(signed))
	assert.NoError(err)

	_, err = verifier.PendingFromToken(parsed)
	assert.ErrorIs(err, ErrWrongStage)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	assert := assert.New(t)
	issuer := testIssuer()
	verifier := NewTokenVerifier(zap.NewNop(), issuer)

	_, err := verifier.ParseAndValidate("not.a.token")
	assert.ErrorIs(err, ErrInvalidToken)
}

func TestFlowFromToken(t *testing.T) {
	assert := assert.New(t)
	issuer := testIssuer()
	verifier := NewTokenVerifier(zap.NewNop(), issuer)
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")

	assert.Equal(auth.StageLoggedOut, verifier.FlowFromToken("").Stage())
	assert.Equal(auth.StageLoggedOut, verifier.FlowFromToken("garbage").Stage())

	pendingToken, err := issuer.IssuePendingToken(&auth.PendingLogin{
		UserID:    uid,
		StartedAt: time.Now().UTC(),
	}, time.Minute*5)
	assert.NoError(err)
	signed, err := issuer.Sign(pendingToken)
	assert.NoError(err)
	state := verifier.FlowFromToken(string(signed))
	assert.Equal(auth.StagePendingTwoFactor, state.Stage())

	sessionToken, err := issuer.IssueSessionToken(&auth.SessionContext{
		UserID:   uid,
		IssuedAt: time.Now().UTC(),
	})
	assert.NoError(err)
	signed, err = issuer.Sign(sessionToken)
	assert.NoError(err)
	state = verifier.FlowFromToken(string(signed))
	assert.Equal(auth.StageAuthenticated, state.Stage())
}
