package account

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/db"
	"github.com/veitlor/libram/tokens"
	"go.uber.org/zap/zaptest"
)

type verifierStub struct {
	verify func(ctx context.Context, identifier string, password string) (*db.UserData, error)
}

func (v *verifierStub) Verify(
	ctx context.Context,
	identifier string,
	password string,
) (*db.UserData, error) {
	return v.verify(ctx, identifier, password)
}

type challengerStub struct {
	issued   bool
	reissued bool
	issue    func(ctx context.Context, user *db.UserData) error
	verify   func(ctx context.Context, userID uuid.UUID, submitted string) error
}

func (c *challengerStub) Issue(ctx context.Context, user *db.UserData) error {
	c.issued = true
	if c.issue != nil {
		return c.issue(ctx, user)
	}
	return nil
}

func (c *challengerStub) Reissue(ctx context.Context, user *db.UserData) error {
	c.reissued = true
	if c.issue != nil {
		return c.issue(ctx, user)
	}
	return nil
}

func (c *challengerStub) Verify(ctx context.Context, userID uuid.UUID, submitted string) error {
	return c.verify(ctx, userID, submitted)
}

type lifecyclerStub struct {
	resetConsumed bool
	consumeToken  func(ctx context.Context, token string) (*db.UserData, error)
	initiateReset func(ctx context.Context, email string) error
	consumeReset  func(ctx context.Context, token string, newPassword string) error
}

func (l *lifecyclerStub) ConsumeVerificationToken(
	ctx context.Context,
	token string,
) (*db.UserData, error) {
	return l.consumeToken(ctx, token)
}

func (l *lifecyclerStub) InitiatePasswordReset(ctx context.Context, email string) error {
	return l.initiateReset(ctx, email)
}

func (l *lifecyclerStub) ConsumePasswordResetToken(
	ctx context.Context,
	token string,
	newPassword string,
) error {
	l.resetConsumed = true
	return l.consumeReset(ctx, token, newPassword)
}

type establisherStub struct {
	establish    func(ctx context.Context, ud *db.UserData, remember bool) (*auth.EstablishedSession, error)
	fromRemember func(ctx context.Context, token string) (*auth.EstablishedSession, error)
	logout       func(ctx context.Context, rememberToken string) error
}

func (e *establisherStub) Establish(
	ctx context.Context,
	ud *db.UserData,
	remember bool,
	sourceIP string,
	userAgent string,
) (*auth.EstablishedSession, error) {
	return e.establish(ctx, ud, remember)
}

func (e *establisherStub) EstablishFromRememberToken(
	ctx context.Context,
	token string,
	sourceIP string,
	userAgent string,
) (*auth.EstablishedSession, error) {
	return e.fromRemember(ctx, token)
}

func (e *establisherStub) Logout(ctx context.Context, rememberToken string) error {
	if e.logout != nil {
		return e.logout(ctx, rememberToken)
	}
	return nil
}

func (e *establisherStub) Routing() auth.RoutingPolicy {
	return auth.RoutingPolicy{}
}

type userLoaderStub struct {
	userByID func(ctx context.Context, id uuid.UUID) (*db.UserData, error)
}

func (u *userLoaderStub) UserByID(ctx context.Context, id uuid.UUID) (*db.UserData, error) {
	return u.userByID(ctx, id)
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{
			PasswordMinLength: 6,
		},
		TwoFactor: &config.TwoFactorConfiguration{
			CodeLength:  6,
			CodeExpiry:  time.Minute * 5,
			MaxAttempts: 3,
		},
		JWT: &config.JWTConfiguration{
			Algorithm:          "HS512",
			Issuer:             "libram.test",
			Audience:           []string{"libram.test"},
			Expiry:             time.Minute * 15,
			HMACSigningKey:     "EhX2GW0mwvflPfkrlDyAHv2XSkUCPuyb",
			RememberMeDuration: time.Hour * 168,
		},
	}
}

func testRessource(t *testing.T, deps *Dependencies) *AccountRessource {
	cfg := testConfig()
	validate := validator.New()
	err := validate.RegisterValidation("minpwd", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) >= cfg.Behaviour.PasswordMinLength
	})
	if err != nil {
		t.Fatal(err)
	}
	issuer := tokens.NewIssuer(zaptest.NewLogger(t), cfg.JWT)
	if deps.Issuer == nil {
		deps.Issuer = issuer
	}
	if deps.Tokens == nil {
		deps.Tokens = tokens.NewTokenVerifier(zaptest.NewLogger(t), issuer)
	}
	return NewAccountRessource(zaptest.NewLogger(t), cfg, validate, deps)
}

func testUser(role string) *db.UserData {
	now := time.Now().UTC()
	libraryID := 7
	return &db.UserData{
		ID:             uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87"),
		Username:       "marion",
		Email:          "marion@example.com",
		EmailConfirmed: &now,
		Role:           role,
		LibraryID:      &libraryID,
		Status:         "active",
	}
}

func sessionFor(ud *db.UserData, dst auth.Destination, rememberToken *string) *auth.EstablishedSession {
	return &auth.EstablishedSession{
		Context: &auth.SessionContext{
			UserID:      ud.ID,
			Username:    ud.Username,
			Email:       ud.Email,
			Role:        auth.Role(ud.Role),
			LibraryID:   ud.LibraryID,
			Destination: dst,
			IssuedAt:    time.Now().UTC(),
		},
		RememberToken: rememberToken,
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Verifier: &verifierStub{
			verify: func(_ context.Context, _ string, _ string) (*db.UserData, error) {
				return nil, auth.ErrEntityDoesNotExist
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.login).
		Post("/login").
		JSON(`{"identifier":"ghost","password":"whatever"}`).
		Expect(t).
		Body(`{"error":"invalid_credentials"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestLoginWrongPasswordReportsAttempts(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Verifier: &verifierStub{
			verify: func(_ context.Context, _ string, _ string) (*db.UserData, error) {
				return nil, &auth.CredentialsError{AttemptsRemaining: 3}
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.login).
		Post("/login").
		JSON(`{"identifier":"marion","password":"wrong"}`).
		Expect(t).
		Body(`{"error":"invalid_credentials","attempts_remaining":3}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestLoginLockedAccount(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Verifier: &verifierStub{
			verify: func(_ context.Context, _ string, _ string) (*db.UserData, error) {
				return nil, &auth.LockedError{Until: time.Now().UTC().Add(time.Minute * 10)}
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.login).
		Post("/login").
		JSON(`{"identifier":"marion","password":"irrelevant"}`).
		Expect(t).
		Status(http.StatusLocked).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body errorResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Error != errLocked {
				return fmt.Errorf("unexpected error kind %s", body.Error)
			}
			if body.RetryInSeconds == nil || *body.RetryInSeconds <= 0 {
				return fmt.Errorf("expected a positive retry window")
			}
			return nil
		}).
		End()
}

func TestLoginUnverifiedAccount(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Verifier: &verifierStub{
			verify: func(_ context.Context, _ string, _ string) (*db.UserData, error) {
				return nil, auth.ErrUnverified
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.login).
		Post("/login").
		JSON(`{"identifier":"marion","password":"topsecret"}`).
		Expect(t).
		Body(`{"error":"unverified"}`).
		Status(http.StatusForbidden).
		End()
}

func TestLoginMemberGetsPendingStage(t *testing.T) {
	assert := assert.New(t)
	ud := testUser("member")
	challenge := &challengerStub{}
	a := testRessource(t, &Dependencies{
		Verifier: &verifierStub{
			verify: func(_ context.Context, _ string, _ string) (*db.UserData, error) {
				return ud, nil
			},
		},
		Challenge: challenge,
		Session:   &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.login).
		Post("/login").
		JSON(`{"identifier":"marion","password":"topsecret"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body pendingResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Stage != string(tokens.PendingTokenStage) {
				return fmt.Errorf("unexpected stage %s", body.Stage)
			}
			if body.Token == "" {
				return fmt.Errorf("expected a pending token")
			}
			return nil
		}).
		End()
	assert.True(challenge.issued)
}

func TestLoginAdminSkipsSecondFactor(t *testing.T) {
	assert := assert.New(t)
	ud := testUser("admin")
	ud.LibraryID = nil
	challenge := &challengerStub{}
	a := testRessource(t, &Dependencies{
		Verifier: &verifierStub{
			verify: func(_ context.Context, _ string, _ string) (*db.UserData, error) {
				return ud, nil
			},
		},
		Challenge: challenge,
		Session: &establisherStub{
			establish: func(_ context.Context, ud *db.UserData, _ bool) (*auth.EstablishedSession, error) {
				return sessionFor(ud, auth.DestinationAdminHome, nil), nil
			},
		},
	})
	apitest.New().
		HandlerFunc(a.login).
		Post("/login").
		JSON(`{"identifier":"root","password":"topsecret"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body sessionResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Stage != string(tokens.SessionTokenStage) {
				return fmt.Errorf("unexpected stage %s", body.Stage)
			}
			if body.Destination != string(auth.DestinationAdminHome) {
				return fmt.Errorf("unexpected destination %s", body.Destination)
			}
			return nil
		}).
		End()
	assert.False(challenge.issued)
}

func pendingTokenFor(t *testing.T, a *AccountRessource, ud *db.UserData, remember bool) string {
	pending := auth.PendingFromUser(ud, remember)
	token, err := a.deps.Issuer.IssuePendingToken(pending, a.cfg.TwoFactor.CodeExpiry)
	if err != nil {
		t.Fatal(err)
	}
	signed, err := a.deps.Issuer.Sign(token)
	if err != nil {
		t.Fatal(err)
	}
	return string(signed)
}

func TestCodeCompletesLogin(t *testing.T) {
	ud := testUser("member")
	rememberToken := "fresh-remember-token"
	a := testRessource(t, &Dependencies{
		Challenge: &challengerStub{
			verify: func(_ context.Context, userID uuid.UUID, submitted string) error {
				if userID != ud.ID || submitted != "491062" {
					return auth.ErrCodeMismatch
				}
				return nil
			},
		},
		Session: &establisherStub{
			establish: func(_ context.Context, ud *db.UserData, remember bool) (*auth.EstablishedSession, error) {
				if !remember {
					return sessionFor(ud, auth.DestinationMemberHome, nil), nil
				}
				return sessionFor(ud, auth.DestinationMemberHome, &rememberToken), nil
			},
		},
		Users: &userLoaderStub{
			userByID: func(_ context.Context, _ uuid.UUID) (*db.UserData, error) {
				return ud, nil
			},
		},
	})
	token := pendingTokenFor(t, a, ud, true)
	apitest.New().
		HandlerFunc(a.code).
		Post("/code").
		JSON(fmt.Sprintf(`{"token":%q,"code":"491062"}`, token)).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body sessionResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Stage != string(tokens.SessionTokenStage) {
				return fmt.Errorf("unexpected stage %s", body.Stage)
			}
			if body.RememberToken == nil || *body.RememberToken != rememberToken {
				return fmt.Errorf("expected the rotated remember token")
			}
			return nil
		}).
		End()
}

func TestCodeMismatchCountsDown(t *testing.T) {
	ud := testUser("member")
	a := testRessource(t, &Dependencies{
		Challenge: &challengerStub{
			verify: func(_ context.Context, _ uuid.UUID, _ string) error {
				return &auth.MismatchError{AttemptsRemaining: 1}
			},
		},
		Session: &establisherStub{},
	})
	token := pendingTokenFor(t, a, ud, false)
	apitest.New().
		HandlerFunc(a.code).
		Post("/code").
		JSON(fmt.Sprintf(`{"token":%q,"code":"000000"}`, token)).
		Expect(t).
		Body(`{"error":"code_mismatch","attempts_remaining":1}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestCodeExhaustedAttempts(t *testing.T) {
	ud := testUser("member")
	a := testRessource(t, &Dependencies{
		Challenge: &challengerStub{
			verify: func(_ context.Context, _ uuid.UUID, _ string) error {
				return auth.ErrTooManyAttempts
			},
		},
		Session: &establisherStub{},
	})
	token := pendingTokenFor(t, a, ud, false)
	apitest.New().
		HandlerFunc(a.code).
		Post("/code").
		JSON(fmt.Sprintf(`{"token":%q,"code":"491062"}`, token)).
		Expect(t).
		Body(`{"error":"too_many_attempts"}`).
		Status(http.StatusForbidden).
		End()
}

func TestCodeExpiredPendingToken(t *testing.T) {
	ud := testUser("member")
	a := testRessource(t, &Dependencies{
		Challenge: &challengerStub{},
		Session:   &establisherStub{},
	})
	pending := auth.PendingFromUser(ud, false)
	pending.StartedAt = time.Now().UTC().Add(-time.Minute * 10)
	token, err := a.deps.Issuer.IssuePendingToken(pending, a.cfg.TwoFactor.CodeExpiry)
	if err != nil {
		t.Fatal(err)
	}
	signed, err := a.deps.Issuer.Sign(token)
	if err != nil {
		t.Fatal(err)
	}
	apitest.New().
		HandlerFunc(a.code).
		Post("/code").
		JSON(fmt.Sprintf(`{"token":%q,"code":"491062"}`, string(signed))).
		Expect(t).
		Body(`{"error":"token_expired"}`).
		Status(http.StatusGone).
		End()
}

func TestConfirmLogsUserIn(t *testing.T) {
	ud := testUser("member")
	a := testRessource(t, &Dependencies{
		Lifecycle: &lifecyclerStub{
			consumeToken: func(_ context.Context, token string) (*db.UserData, error) {
				if token != "confirm-me" {
					return nil, auth.ErrTokenInvalid
				}
				return ud, nil
			},
		},
		Session: &establisherStub{
			establish: func(_ context.Context, ud *db.UserData, _ bool) (*auth.EstablishedSession, error) {
				return sessionFor(ud, auth.DestinationMemberHome, nil), nil
			},
		},
	})
	apitest.New().
		HandlerFunc(a.confirm).
		Post("/confirm").
		JSON(`{"token":"confirm-me"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body sessionResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Stage != string(tokens.SessionTokenStage) {
				return fmt.Errorf("unexpected stage %s", body.Stage)
			}
			return nil
		}).
		End()
}

func TestConfirmReplayedToken(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Lifecycle: &lifecyclerStub{
			consumeToken: func(_ context.Context, _ string) (*db.UserData, error) {
				return nil, auth.ErrTokenInvalid
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.confirm).
		Post("/confirm").
		JSON(`{"token":"already-spent"}`).
		Expect(t).
		Body(`{"error":"invalid_token"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestConfirmExpiredWindow(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Lifecycle: &lifecyclerStub{
			consumeToken: func(_ context.Context, _ string) (*db.UserData, error) {
				return nil, auth.ErrTokenExpired
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.confirmFromLink).
		Get("/confirm").
		Query("token", "too-late").
		Expect(t).
		Body(`{"error":"token_expired"}`).
		Status(http.StatusGone).
		End()
}

func TestRecoverUnknownEmailLooksIdentical(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Lifecycle: &lifecyclerStub{
			initiateReset: func(_ context.Context, email string) error {
				if email == "nobody@example.com" {
					return auth.ErrEntityDoesNotExist
				}
				return nil
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.recover).
		Post("/recover").
		JSON(`{"email":"nobody@example.com"}`).
		Expect(t).
		Body(`{"status":"ok"}`).
		Status(http.StatusOK).
		End()
	apitest.New().
		HandlerFunc(a.recover).
		Post("/recover").
		JSON(`{"email":"marion@example.com"}`).
		Expect(t).
		Body(`{"status":"ok"}`).
		Status(http.StatusOK).
		End()
}

func TestResetWeakPassword(t *testing.T) {
	assert := assert.New(t)
	lifecycle := &lifecyclerStub{
		consumeReset: func(_ context.Context, _ string, _ string) error {
			return nil
		},
	}
	a := testRessource(t, &Dependencies{
		Lifecycle: lifecycle,
		Session:   &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.reset).
		Post("/reset").
		JSON(`{"token":"reset-me","password":"abc"}`).
		Expect(t).
		Body(`{"error":"weak_password"}`).
		Status(http.StatusUnprocessableEntity).
		End()
	assert.False(lifecycle.resetConsumed)
}

func TestResetReplayedToken(t *testing.T) {
	a := testRessource(t, &Dependencies{
		Lifecycle: &lifecyclerStub{
			consumeReset: func(_ context.Context, _ string, _ string) error {
				return auth.ErrTokenInvalid
			},
		},
		Session: &establisherStub{},
	})
	apitest.New().
		HandlerFunc(a.reset).
		Post("/reset").
		JSON(`{"token":"already-spent","password":"longenough"}`).
		Expect(t).
		Body(`{"error":"invalid_token"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestRememberTokenRotation(t *testing.T) {
	ud := testUser("member")
	rotated := "rotated-remember-token"
	a := testRessource(t, &Dependencies{
		Session: &establisherStub{
			fromRemember: func(_ context.Context, token string) (*auth.EstablishedSession, error) {
				if token != "old-remember-token" {
					return nil, auth.ErrTokenInvalid
				}
				return sessionFor(ud, auth.DestinationMemberHome, &rotated), nil
			},
		},
	})
	apitest.New().
		HandlerFunc(a.remember).
		Post("/remember").
		JSON(`{"remember_token":"old-remember-token"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body sessionResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.RememberToken == nil || *body.RememberToken != rotated {
				return fmt.Errorf("expected the rotated remember token")
			}
			return nil
		}).
		End()
	apitest.New().
		HandlerFunc(a.remember).
		Post("/remember").
		JSON(`{"remember_token":"stolen-and-already-used"}`).
		Expect(t).
		Body(`{"error":"invalid_token"}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestLogout(t *testing.T) {
	assert := assert.New(t)
	var revoked string
	a := testRessource(t, &Dependencies{
		Session: &establisherStub{
			logout: func(_ context.Context, rememberToken string) error {
				revoked = rememberToken
				return nil
			},
		},
	})
	apitest.New().
		HandlerFunc(a.logout).
		Post("/logout").
		JSON(`{"remember_token":"old-remember-token"}`).
		Expect(t).
		Body(`{"status":"ok"}`).
		Status(http.StatusOK).
		End()
	assert.Equal("old-remember-token", revoked)
}

func TestSessionEndpoint(t *testing.T) {
	ud := testUser("librarian")
	a := testRessource(t, &Dependencies{
		Session: &establisherStub{},
	})
	sc := sessionFor(ud, auth.DestinationLibrarianDesk, nil).Context
	token, err := a.deps.Issuer.IssueSessionToken(sc)
	if err != nil {
		t.Fatal(err)
	}
	signed, err := a.deps.Issuer.Sign(token)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := a.deps.Tokens.ParseAndValidate(string(signed))
	if err != nil {
		t.Fatal(err)
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		a.session(w, r.WithContext(jwtauth.NewContext(r.Context(), parsed, nil)))
	}
	apitest.New().
		HandlerFunc(handler).
		Get("/session").
		Expect(t).
		Body(`{"user_id":"d1ef48c5-1fad-4514-ba2c-3a1851d39f87","username":"marion","email":"marion@example.com","role":"librarian","library_id":7,"destination":"desk"}`).
		Status(http.StatusOK).
		End()
}
