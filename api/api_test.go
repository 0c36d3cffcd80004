package api

import (
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/veitlor/libram/api/app/account"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/i18n"
	"github.com/veitlor/libram/tokens"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestComposeWithoutCorsSection(t *testing.T) {
	assert := assert.New(t)
	// a config file without a cors block passes validation and
	// composition must not trip over the absent section
	cfg := &config.Configuration{
		Server:   &config.ServerConfiguration{Port: 3000},
		SMTP:     &config.SMTPConfiguration{},
		Database: &config.DatabaseConfiguration{Type: "sqlite", DSN: ":memory:"},
		Behaviour: &config.BehaviourConfiguration{
			DefaultLocale:     "en",
			PasswordMinLength: 6,
		},
		TwoFactor: &config.TwoFactorConfiguration{
			CodeLength:  6,
			CodeExpiry:  time.Minute * 5,
			MaxAttempts: 3,
		},
		JWT: &config.JWTConfiguration{
			Algorithm:      "HS512",
			Issuer:         "libram.test",
			Expiry:         time.Minute * 15,
			HMACSigningKey: "EhX2GW0mwvflPfkrlDyAHv2XSkUCPuyb",
		},
	}
	assert.NoError(cfg.Validate())

	logger := zaptest.NewLogger(t)
	registry, err := i18n.NewTranslationRegistry(fstest.MapFS{}, zap.NewNop())
	assert.NoError(err)
	issuer := tokens.NewIssuer(zap.NewNop(), cfg.JWT)
	verifier := tokens.NewTokenVerifier(zap.NewNop(), issuer)

	mux, err := compose(logger, cfg, issuer, verifier, &account.Dependencies{}, registry)
	assert.NoError(err)
	assert.NotNil(mux)

	apitest.New().
		Handler(mux).
		Post("/auth/login").
		JSON(`{}`).
		Expect(t).
		Body(`{"error":"invalid_payload"}`).
		Status(http.StatusBadRequest).
		End()
}
