package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/db"
	"github.com/veitlor/libram/tokens"
	"go.uber.org/zap"
)

// login checks the password factor. Depending on the role the caller
// either receives a finished session or a pending token that has to be
// replayed to the code endpoint together with the emailed code.
func (a *AccountRessource) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
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
	ud, err := a.deps.Verifier.Verify(r.Context(), req.Identifier, req.Password)
	if err != nil {
		a.respondVerifyError(w, r, err)
		return
	}
	if a.deps.Session.Routing().RequiresSecondFactor(auth.Role(ud.Role)) {
		a.beginSecondFactor(w, r, ud, req.Remember)
		return
	}
	a.finishLogin(w, r, ud, req.Remember)
}

// respondVerifyError maps credential verification failures, an unknown
// identifier is indistinguishable from a wrong password on the wire
func (a *AccountRessource) respondVerifyError(w http.ResponseWriter, r *http.Request, err error) {
	var locked *auth.LockedError
	var creds *auth.CredentialsError
	switch {
	case errors.As(err, &locked):
		retry := int(locked.Remaining().Seconds())
		renderErr := render.Render(w, r, &errorResponse{
			Error:          errLocked,
			RetryInSeconds: &retry,
			StatusCode:     http.StatusLocked,
		})
		if renderErr != nil {
			a.log.Error("unable to render response", zap.Error(renderErr))
		}
	case errors.As(err, &creds):
		remaining := creds.AttemptsRemaining
		renderErr := render.Render(w, r, &errorResponse{
			Error:             errInvalidCredentials,
			AttemptsRemaining: &remaining,
			StatusCode:        http.StatusUnauthorized,
		})
		if renderErr != nil {
			a.log.Error("unable to render response", zap.Error(renderErr))
		}
	case errors.Is(err, auth.ErrUnverified):
		a.respondError(w, r, http.StatusForbidden, errUnverified)
	case errors.Is(err, auth.ErrEntityDoesNotExist),
		errors.Is(err, auth.ErrInvalidCredentials):
		a.respondError(w, r, http.StatusUnauthorized, errInvalidCredentials)
	default:
		a.log.Error("credential verification failed", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
	}
}

// beginSecondFactor emails a login code and hands the client its
// pending token, password success alone never yields a session here
func (a *AccountRessource) beginSecondFactor(
	w http.ResponseWriter,
	r *http.Request,
	ud *db.UserData,
	remember bool,
) {
	err := a.deps.Challenge.Issue(r.Context(), ud)
	if err != nil {
		if errors.Is(err, auth.ErrDeliveryFailed) {
			a.respondError(w, r, http.StatusBadGateway, errDeliveryFailed)
			return
		}
		a.log.Error("unable to issue login code", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	pending := auth.PendingFromUser(ud, remember)
	token, err := a.deps.Issuer.IssuePendingToken(pending, a.cfg.TwoFactor.CodeExpiry)
	if err != nil {
		a.log.Error("unable to issue pending token", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	signed, err := a.deps.Issuer.Sign(token)
	if err != nil {
		a.log.Error("unable to sign pending token", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	err = render.Render(w, r, &pendingResponse{
		Stage: string(tokens.PendingTokenStage),
		Token: string(signed),
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

// finishLogin establishes the session and signs the session token
func (a *AccountRessource) finishLogin(
	w http.ResponseWriter,
	r *http.Request,
	ud *db.UserData,
	remember bool,
) {
	es, err := a.deps.Session.Establish(r.Context(), ud, remember, r.RemoteAddr, r.UserAgent())
	if err != nil {
		a.log.Error("unable to establish session", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	a.respondSession(w, r, es)
}

func (a *AccountRessource) respondSession(
	w http.ResponseWriter,
	r *http.Request,
	es *auth.EstablishedSession,
) {
	token, err := a.deps.Issuer.IssueSessionToken(es.Context)
	if err != nil {
		a.log.Error("unable to issue session token", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	signed, err := a.deps.Issuer.Sign(token)
	if err != nil {
		a.log.Error("unable to sign session token", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	err = render.Render(w, r, &sessionResponse{
		Stage:         string(tokens.SessionTokenStage),
		Token:         string(signed),
		Destination:   string(es.Context.Destination),
		RememberToken: es.RememberToken,
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

// remember redeems a remember token into a fresh session, rotating in
// a replacement token since redemption is single use
func (a *AccountRessource) remember(w http.ResponseWriter, r *http.Request) {
	var req rememberRequest
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
	es, err := a.deps.Session.EstablishFromRememberToken(
		r.Context(),
		req.RememberToken,
		r.RemoteAddr,
		r.UserAgent(),
	)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenInvalid):
			a.respondError(w, r, http.StatusUnauthorized, errInvalidToken)
		case errors.Is(err, auth.ErrTokenExpired):
			a.respondError(w, r, http.StatusGone, errTokenExpired)
		default:
			a.log.Error("unable to redeem remember token", zap.Error(err))
			a.respondError(w, r, http.StatusInternalServerError, errServerError)
		}
		return
	}
	a.respondSession(w, r, es)
}

// logout revokes the presented remember token, the session token
// itself simply expires client side
func (a *AccountRessource) logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.respondError(w, r, http.StatusBadRequest, errInvalidPayload)
		return
	}
	err = a.deps.Session.Logout(r.Context(), req.RememberToken)
	if err != nil {
		a.log.Error("unable to revoke remember token", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	err = render.Render(w, r, &statusResponse{Status: "ok"})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

// session echoes the identity inside the presented session token
func (a *AccountRessource) session(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		a.respondError(w, r, http.StatusUnauthorized, errInvalidToken)
		return
	}
	sc, err := a.deps.Tokens.SessionFromToken(token)
	if err != nil {
		a.respondError(w, r, http.StatusUnauthorized, errInvalidToken)
		return
	}
	resp := &sessionInfoResponse{
		UserID:      sc.UserID.String(),
		Username:    sc.Username,
		Email:       sc.Email,
		Role:        string(sc.Role),
		LibraryID:   sc.LibraryID,
		Destination: string(sc.Destination),
		DisplayName: sc.DisplayName,
	}
	err = render.Render(w, r, resp)
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}
