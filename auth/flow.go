package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/veitlor/libram/db"
)

// FlowStage is the login progress of one client
type FlowStage int

const (
	StageLoggedOut FlowStage = iota
	StagePendingTwoFactor
	StageAuthenticated
)

// PendingLogin is the snapshot taken after the password check so the
// code verification step can finish without a second directory read
type PendingLogin struct {
	UserID      uuid.UUID
	Username    string
	Email       string
	Role        Role
	LibraryID   *int
	DisplayName *string
	Remember    bool
	StartedAt   time.Time
}

func PendingFromUser(ud *db.UserData, remember bool) *PendingLogin {
	return &PendingLogin{
		UserID:      ud.ID,
		Username:    ud.Username,
		Email:       ud.Email,
		Role:        Role(ud.Role),
		LibraryID:   ud.LibraryID,
		DisplayName: ud.DisplayName,
		Remember:    remember,
		StartedAt:   time.Now().UTC(),
	}
}

// FlowState is the login state machine as one tagged value, a client
// is logged out, awaiting its second factor or authenticated and never
// anything in between
type FlowState struct {
	stage   FlowStage
	pending *PendingLogin
	session *SessionContext
}

func LoggedOut() FlowState {
	return FlowState{stage: StageLoggedOut}
}

func AwaitingTwoFactor(pending *PendingLogin) FlowState {
	return FlowState{stage: StagePendingTwoFactor, pending: pending}
}

func Authenticated(session *SessionContext) FlowState {
	return FlowState{stage: StageAuthenticated, session: session}
}

func (f FlowState) Stage() FlowStage {
	return f.stage
}

// Pending returns the snapshot while awaiting the second factor
func (f FlowState) Pending() (*PendingLogin, bool) {
	if f.stage != StagePendingTwoFactor {
		return nil, false
	}
	return f.pending, true
}

// Session returns the established session context once authenticated
func (f FlowState) Session() (*SessionContext, bool) {
	if f.stage != StageAuthenticated {
		return nil, false
	}
	return f.session, true
}
