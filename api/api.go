package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"
	"github.com/veitlor/libram/api/app/account"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/i18n"
	"github.com/veitlor/libram/tokens"

	"go.uber.org/zap"
)

var validate *validator.Validate
var tokenAuth *jwtauth.JWTAuth

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	issuer *tokens.TokenIssuer,
	verifier *tokens.TokenVerifier,
	deps *account.Dependencies,
	registry *i18n.TranslationRegistry) (*chi.Mux, error) {
	validate = validator.New()

	err := validate.RegisterValidation("minpwd", func(fl validator.FieldLevel) bool {
		if cfg.Behaviour.PasswordMinLength <= 0 {
			return true
		}
		return len(fl.Field().String()) >= cfg.Behaviour.PasswordMinLength
	})
	if err != nil {
		logger.Error("Could not create minpwd validation", zap.Error(err))
	}
	// use same settings as issuer (duh)
	tokenAuth = jwtauth.New(issuer.Alg(), issuer.PrivateKey(), issuer.PublicKey())

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))
	if cfg.CORS != nil && len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowCredentials: cfg.CORS.AllowCredentials,
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		}))
	}
	if len(registry.Languages()) > 1 {
		r.Use(languageMiddleware(cfg.Behaviour.DefaultLocale, registry))
	}
	r.Use(jwtauth.Verifier(tokenAuth))

	if cfg.DebugMode() {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("running in debug mode - no auto redirects to site"))
		})
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, cfg.Behaviour.Site, http.StatusFound)
		})
	}

	accountRessource := account.NewAccountRessource(
		logger.Named("account_ressource"),
		cfg,
		validate,
		deps,
	)

	r.Mount("/auth", accountRessource.Router())

	return r, nil
}
