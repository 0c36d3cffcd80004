package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veitlor/libram/auth"
)

// confirm consumes an email verification token, a successful
// confirmation logs the fresh account straight in
func (a *AccountRessource) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
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
	a.consumeConfirmToken(w, r, req.Token)
}

// confirmFromLink is the emailed link variant carrying the token as a
// query parameter
func (a *AccountRessource) confirmFromLink(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		a.respondError(w, r, http.StatusBadRequest, errInvalidPayload)
		return
	}
	a.consumeConfirmToken(w, r, token)
}

func (a *AccountRessource) consumeConfirmToken(
	w http.ResponseWriter,
	r *http.Request,
	token string,
) {
	ud, err := a.deps.Lifecycle.ConsumeVerificationToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenInvalid):
			a.respondError(w, r, http.StatusBadRequest, errInvalidToken)
		case errors.Is(err, auth.ErrTokenExpired):
			a.respondError(w, r, http.StatusGone, errTokenExpired)
		default:
			a.respondError(w, r, http.StatusInternalServerError, errServerError)
		}
		return
	}
	a.finishLogin(w, r, ud, false)
}
