package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/veitlor/libram/auth"
	"go.uber.org/zap"
)

// recover starts a password reset. The response is identical whether
// the address is registered or not so the endpoint cannot be used to
// probe for accounts.
func (a *AccountRessource) recover(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.respondError(w, r, http.StatusBadRequest, errInvalidPayload)
		return
	}
	err = a.validate.Struct(&req)
	if err != nil {
		a.respondError(w, r, http.StatusBadRequest, errInvalidPayload)
		return
	}
	err = a.deps.Lifecycle.InitiatePasswordReset(r.Context(), req.Email)
	if err != nil && !errors.Is(err, auth.ErrEntityDoesNotExist) {
		if errors.Is(err, auth.ErrDeliveryFailed) {
			a.respondError(w, r, http.StatusBadGateway, errDeliveryFailed)
			return
		}
		a.log.Error("unable to initiate password reset", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	err = render.Render(w, r, &statusResponse{Status: "ok"})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

// reset consumes a reset token and sets the new password
func (a *AccountRessource) reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.respondError(w, r, http.StatusBadRequest, errInvalidPayload)
		return
	}
	err = a.validate.Struct(&req)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "minpwd" {
					a.respondError(w, r, http.StatusUnprocessableEntity, errWeakPassword)
					return
				}
			}
		}
		a.respondError(w, r, http.StatusBadRequest, errInvalidPayload)
		return
	}
	err = a.deps.Lifecycle.ConsumePasswordResetToken(r.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordGuidelines):
			a.respondError(w, r, http.StatusUnprocessableEntity, errWeakPassword)
		case errors.Is(err, auth.ErrTokenInvalid):
			a.respondError(w, r, http.StatusBadRequest, errInvalidToken)
		case errors.Is(err, auth.ErrTokenExpired):
			a.respondError(w, r, http.StatusGone, errTokenExpired)
		default:
			a.log.Error("unable to consume password reset token", zap.Error(err))
			a.respondError(w, r, http.StatusInternalServerError, errServerError)
		}
		return
	}
	err = render.Render(w, r, &statusResponse{Status: "ok"})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}
