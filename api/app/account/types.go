package account

import (
	"net/http"

	"github.com/go-chi/render"
)

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
	Remember   bool   `json:"remember"`
}

type codeRequest struct {
	Token string `json:"token" validate:"required"`
	Code  string `json:"code"  validate:"required"`
}

type resendRequest struct {
	Token string `json:"token" validate:"required"`
}

type confirmRequest struct {
	Token string `json:"token" validate:"required"`
}

type recoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,minpwd"`
}

type logoutRequest struct {
	RememberToken string `json:"remember_token"`
}

type rememberRequest struct {
	RememberToken string `json:"remember_token" validate:"required"`
}

// pendingResponse is the password-verified half of a login, the token
// has to be replayed to the code endpoint together with the emailed code
type pendingResponse struct {
	Stage string `json:"stage"`
	Token string `json:"token"`
}

func (*pendingResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type sessionResponse struct {
	Stage         string  `json:"stage"`
	Token         string  `json:"token"`
	Destination   string  `json:"destination"`
	RememberToken *string `json:"remember_token,omitempty"`
}

func (*sessionResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type sessionInfoResponse struct {
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	LibraryID   *int    `json:"library_id,omitempty"`
	Destination string  `json:"destination"`
	DisplayName *string `json:"display_name,omitempty"`
}

func (*sessionInfoResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type statusResponse struct {
	Status string `json:"status"`
}

func (*statusResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type errorResponse struct {
	Error             string `json:"error"`
	AttemptsRemaining *int   `json:"attempts_remaining,omitempty"`
	RetryInSeconds    *int   `json:"retry_in_seconds,omitempty"`
	StatusCode        int    `json:"-"`
}

func (e *errorResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	if e.StatusCode != 0 {
		render.Status(r, e.StatusCode)
	}
	return nil
}

const (
	errInvalidPayload     = "invalid_payload"
	errInvalidCredentials = "invalid_credentials"
	errLocked             = "locked"
	errUnverified         = "unverified"
	errMalformedCode      = "malformed_code"
	errCodeExpired        = "code_expired"
	errCodeMismatch       = "code_mismatch"
	errTooManyAttempts    = "too_many_attempts"
	errInvalidToken       = "invalid_token"
	errTokenExpired       = "token_expired"
	errWeakPassword       = "weak_password"
	errDeliveryFailed     = "delivery_failed"
	errServerError        = "server_error"
)
