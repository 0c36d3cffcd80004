package tokens

import "errors"

// TokenStage tags what a signed token represents in the login flow
type TokenStage string

// SessionTokenStage is a fully authenticated session
const SessionTokenStage TokenStage = "session"

// PendingTokenStage is a password-verified login awaiting its second factor
const PendingTokenStage TokenStage = "pending_2fa"

var ErrTokenExpired = errors.New("token expired")
var ErrInvalidToken = errors.New("invalid token")
var ErrWrongStage = errors.New("token stage does not fit the operation")
