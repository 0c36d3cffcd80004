package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/veitlor/libram/db"
)

func TestFlowStateStages(t *testing.T) {
	assert := assert.New(t)

	out := LoggedOut()
	assert.Equal(StageLoggedOut, out.Stage())
	_, ok := out.Pending()
	assert.False(ok)
	_, ok = out.Session()
	assert.False(ok)

	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := &db.UserData{
		ID:       uid,
		Username: "marion",
		Email:    "marion@example.com",
		Role:     "member",
	}
	pending := PendingFromUser(ud, true)
	awaiting := AwaitingTwoFactor(pending)
	assert.Equal(StagePendingTwoFactor, awaiting.Stage())
	got, ok := awaiting.Pending()
	assert.True(ok)
	assert.Equal(uid, got.UserID)
	assert.True(got.Remember)
	_, ok = awaiting.Session()
	assert.False(ok)

	sc := &SessionContext{UserID: uid, IssuedAt: time.Now().UTC()}
	authed := Authenticated(sc)
	assert.Equal(StageAuthenticated, authed.Stage())
	gotSession, ok := authed.Session()
	assert.True(ok)
	assert.Equal(uid, gotSession.UserID)
	_, ok = authed.Pending()
	assert.False(ok)
}

func TestPendingFromUserSnapshots(t *testing.T) {
	assert := assert.New(t)
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	libraryID := 3
	display := "Marion the Librarian"
	ud := &db.UserData{
		ID:          uid,
		Username:    "marion",
		Email:       "marion@example.com",
		Role:        "librarian",
		LibraryID:   &libraryID,
		DisplayName: &display,
	}

	pending := PendingFromUser(ud, false)
	assert.Equal(uid, pending.UserID)
	assert.Equal("marion", pending.Username)
	assert.Equal(RoleLibrarian, pending.Role)
	assert.Equal(&libraryID, pending.LibraryID)
	assert.False(pending.Remember)
	assert.False(pending.StartedAt.IsZero())
}
