package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/veitlor/libram/auth/mocks"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/db"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func activeUser(t *testing.T, id uuid.UUID, password string) *db.UserData {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	confirmed := time.Now().UTC()
	return &db.UserData{
		ID:             id,
		Username:       "marion",
		Email:          "marion@example.com",
		EmailConfirmed: &confirmed,
		Role:           "member",
		Status:         db.UserStatusActive,
		PasswordHash:   hash,
	}
}

func TestVerifyUnknownIdentifier(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()

	dataStore.On("UserByIdentifier", ctx, "ghost").Return(nil, db.ErrNotFound)

	_, err := service.Verify(ctx, "ghost", "password")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrEntityDoesNotExist)
}

func TestVerifyEmptyCredentials(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()

	_, err := service.Verify(ctx, "", "")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidCredentials)
}

func TestVerifyLockedUser(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")
	lockedTill := time.Now().UTC().Add(time.Minute * 10)
	ud.LockoutTill = &lockedTill

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)

	_, err := service.Verify(ctx, "marion", "password")
	assert.NotNil(err)
	var locked *LockedError
	assert.ErrorAs(err, &locked)
	assert.Equal(lockedTill, locked.Until)
}

func TestVerifyPendingUser(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")
	ud.Status = db.UserStatusPending

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)

	_, err := service.Verify(ctx, "marion", "password")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrUnverified)
}

func TestVerifyUnconfirmedUser(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")
	ud.EmailConfirmed = nil

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)

	_, err := service.Verify(ctx, "marion", "password")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrUnverified)
}

func TestVerifyWrongPasswordCountsDown(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{
			AutoLockoutCount:    5,
			AutoLockoutDuration: time.Minute * 10,
		},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)
	dataStore.On("RecordFailedAttempt", ctx, uid).Return(1, nil).Once()
	dispatcher.On("Dispatch", mock.Anything).Return()

	_, err := service.Verify(ctx, "marion", "nope")
	assert.NotNil(err)
	var creds *CredentialsError
	assert.ErrorAs(err, &creds)
	assert.Equal(4, creds.AttemptsRemaining)

	dataStore.On("RecordFailedAttempt", ctx, uid).Return(2, nil).Once()
	_, err = service.Verify(ctx, "marion", "nope")
	assert.ErrorAs(err, &creds)
	assert.Equal(3, creds.AttemptsRemaining)
}

func TestVerifyFifthFailureLocks(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{
			AutoLockoutCount:    5,
			AutoLockoutDuration: time.Minute * 10,
		},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")
	ud.CurrentFailureCount = 4

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)
	dataStore.On("RecordFailedAttempt", ctx, uid).Return(5, nil)
	dataStore.On("LockUser", ctx, uid, mock.Anything).Return(true, nil)
	dispatcher.On("Dispatch", mock.Anything).Return()

	_, err := service.Verify(ctx, "marion", "nope")
	assert.NotNil(err)
	var locked *LockedError
	assert.ErrorAs(err, &locked)
	assert.True(locked.Until.After(time.Now().UTC()))
}

func TestVerifySuccessResetsFailureState(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")
	ud.CurrentFailureCount = 3

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)
	dataStore.On("ResetFailureState", ctx, uid).Return(nil)

	got, err := service.Verify(ctx, "marion", "password")
	assert.Nil(err)
	assert.NotNil(got)
	assert.Equal(uid, got.ID)
}

func TestVerifyExpiredLockoutFallsThrough(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewVerifierStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewCredentialVerifier(
		dataStore,
		logger,
		&config.BehaviourConfiguration{AutoLockoutCount: 5},
		dispatcher,
	)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := activeUser(t, uid, "password")
	past := time.Now().UTC().Add(-time.Minute)
	ud.LockoutTill = &past

	dataStore.On("UserByIdentifier", ctx, "marion").Return(ud, nil)
	dataStore.On("ResetFailureState", ctx, uid).Return(nil)

	got, err := service.Verify(ctx, "marion", "password")
	assert.Nil(err)
	assert.NotNil(got)
}
