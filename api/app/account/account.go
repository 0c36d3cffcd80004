package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/veitlor/libram/config"
	"go.uber.org/zap"
)

// AccountRessource exposes the whole login, verification and recovery
// surface as a JSON API
type AccountRessource struct {
	log      *zap.Logger
	cfg      *config.Configuration
	validate *validator.Validate
	deps     *Dependencies
}

func NewAccountRessource(
	log *zap.Logger,
	cfg *config.Configuration,
	validate *validator.Validate,
	deps *Dependencies,
) *AccountRessource {
	return &AccountRessource{
		log:      log,
		cfg:      cfg,
		validate: validate,
		deps:     deps,
	}
}

func (a *AccountRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Post("/login", a.login)
	r.Post("/code", a.code)
	r.Post("/resend", a.resend)

	r.Get("/confirm", a.confirmFromLink)
	r.Post("/confirm", a.confirm)

	r.Post("/recover", a.recover)
	r.Post("/reset", a.reset)

	r.Post("/remember", a.remember)
	r.Post("/logout", a.logout)
	r.Get("/session", a.session)

	return r
}

func (a *AccountRessource) respondError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	kind string,
) {
	err := render.Render(w, r, &errorResponse{Error: kind, StatusCode: status})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}
