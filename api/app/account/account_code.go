package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/tokens"
	"go.uber.org/zap"
)

// code completes the second factor, a pending token plus the matching
// emailed code yields the session the password check withheld
func (a *AccountRessource) code(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
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
	pending, ok := a.pendingFromRequest(w, r, req.Token)
	if !ok {
		return
	}
	err = a.deps.Challenge.Verify(r.Context(), pending.UserID, req.Code)
	if err != nil {
		a.respondCodeError(w, r, err)
		return
	}
	ud, err := a.deps.Users.UserByID(r.Context(), pending.UserID)
	if err != nil {
		a.log.Error("unable to load user after code verification", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	a.finishLogin(w, r, ud, pending.Remember)
}

// resend invalidates the outstanding code and emails a fresh one, the
// client receives a new pending token for the new code window
func (a *AccountRessource) resend(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
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
	pending, ok := a.pendingFromRequest(w, r, req.Token)
	if !ok {
		return
	}
	ud, err := a.deps.Users.UserByID(r.Context(), pending.UserID)
	if err != nil {
		a.log.Error("unable to load user for code reissue", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	err = a.deps.Challenge.Reissue(r.Context(), ud)
	if err != nil {
		if errors.Is(err, auth.ErrDeliveryFailed) {
			a.respondError(w, r, http.StatusBadGateway, errDeliveryFailed)
			return
		}
		a.log.Error("unable to reissue login code", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
		return
	}
	fresh := auth.PendingFromUser(ud, pending.Remember)
	token, err := a.deps.Issuer.IssuePendingToken(fresh, a.cfg.TwoFactor.CodeExpiry)
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

// pendingFromRequest validates the pending token and unpacks the login
// snapshot, on failure the response has already been written
func (a *AccountRessource) pendingFromRequest(
	w http.ResponseWriter,
	r *http.Request,
	raw string,
) (*auth.PendingLogin, bool) {
	token, err := a.deps.Tokens.ParseAndValidate(raw)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			a.respondError(w, r, http.StatusGone, errTokenExpired)
		} else {
			a.respondError(w, r, http.StatusUnauthorized, errInvalidToken)
		}
		return nil, false
	}
	pending, err := a.deps.Tokens.PendingFromToken(token)
	if err != nil {
		a.respondError(w, r, http.StatusUnauthorized, errInvalidToken)
		return nil, false
	}
	return pending, true
}

func (a *AccountRessource) respondCodeError(w http.ResponseWriter, r *http.Request, err error) {
	var mismatch *auth.MismatchError
	switch {
	case errors.Is(err, auth.ErrMalformedCode):
		a.respondError(w, r, http.StatusBadRequest, errMalformedCode)
	case errors.Is(err, auth.ErrCodeExpired):
		a.respondError(w, r, http.StatusGone, errCodeExpired)
	case errors.Is(err, auth.ErrTooManyAttempts):
		a.respondError(w, r, http.StatusForbidden, errTooManyAttempts)
	case errors.As(err, &mismatch):
		remaining := mismatch.AttemptsRemaining
		renderErr := render.Render(w, r, &errorResponse{
			Error:             errCodeMismatch,
			AttemptsRemaining: &remaining,
			StatusCode:        http.StatusUnauthorized,
		})
		if renderErr != nil {
			a.log.Error("unable to render response", zap.Error(renderErr))
		}
	case errors.Is(err, auth.ErrCodeMismatch):
		a.respondError(w, r, http.StatusUnauthorized, errCodeMismatch)
	default:
		a.log.Error("code verification failed", zap.Error(err))
		a.respondError(w, r, http.StatusInternalServerError, errServerError)
	}
}
