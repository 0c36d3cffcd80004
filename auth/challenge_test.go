package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/veitlor/libram/auth/mocks"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/db"
	"go.uber.org/zap/zaptest"
)

func challengeConfig() *config.Configuration {
	return &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{
			DefaultLocale: "en",
		},
		TwoFactor: &config.TwoFactorConfiguration{
			CodeLength:  6,
			CodeExpiry:  time.Minute * 5,
			MaxAttempts: 3,
		},
	}
}

func TestIssueSendsCode(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := &db.UserData{ID: uid, Email: "marion@example.com"}

	var sentCode string
	dataStore.On("InsertLoginCode", ctx, uid, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentCode = args.String(2)
		}).
		Return(1, nil)
	mailer.On("SendLoginCodeMail", "marion@example.com", mock.Anything, time.Minute*5, "en").
		Return(nil)
	dispatcher.On("Dispatch", mock.Anything).Return()

	err := service.Issue(ctx, ud)
	assert.Nil(err)
	assert.Len(sentCode, 6)
	for _, r := range sentCode {
		assert.True(r >= '0' && r <= '9')
	}
}

func TestIssueDeliveryFailure(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	ud := &db.UserData{ID: uid, Email: "marion@example.com"}

	dataStore.On("InsertLoginCode", ctx, uid, mock.Anything, mock.Anything).Return(1, nil)
	mailer.On("SendLoginCodeMail", "marion@example.com", mock.Anything, time.Minute*5, "en").
		Return(errors.New("smtp connection refused"))

	err := service.Issue(ctx, ud)
	assert.NotNil(err)
	assert.ErrorIs(err, ErrDeliveryFailed)
}

func TestVerifyMalformedCodeTouchesNothing(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")

	err := service.Verify(ctx, uid, "12345")
	assert.ErrorIs(err, ErrMalformedCode)

	err = service.Verify(ctx, uid, "12a456")
	assert.ErrorIs(err, ErrMalformedCode)

	err = service.Verify(ctx, uid, "1234567")
	assert.ErrorIs(err, ErrMalformedCode)
}

func TestVerifyNoOpenCode(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")

	dataStore.On("LatestValidCode", ctx, uid).Return(nil, db.ErrNotFound)

	err := service.Verify(ctx, uid, "123456")
	assert.ErrorIs(err, ErrCodeExpired)
}

func TestVerifyExpiredCode(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	code := &db.LoginCodeData{
		ID:        1,
		UserID:    uid,
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Second),
	}

	dataStore.On("LatestValidCode", ctx, uid).Return(code, nil)

	err := service.Verify(ctx, uid, "123456")
	assert.ErrorIs(err, ErrCodeExpired)
}

func TestVerifyMismatchCountsDown(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	code := &db.LoginCodeData{
		ID:        1,
		UserID:    uid,
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}

	dataStore.On("LatestValidCode", ctx, uid).Return(code, nil)
	dataStore.On("IncrementCodeAttempts", ctx, 1).Return(1, nil)

	err := service.Verify(ctx, uid, "654321")
	assert.NotNil(err)
	var mismatch *MismatchError
	assert.ErrorAs(err, &mismatch)
	assert.Equal(2, mismatch.AttemptsRemaining)
	assert.ErrorIs(err, ErrCodeMismatch)
}

func TestVerifyThirdMismatchExhausts(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	code := &db.LoginCodeData{
		ID:        1,
		UserID:    uid,
		Code:      "123456",
		Attempts:  2,
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}

	dataStore.On("LatestValidCode", ctx, uid).Return(code, nil)
	dataStore.On("IncrementCodeAttempts", ctx, 1).Return(3, nil)
	dispatcher.On("Dispatch", mock.Anything).Return()

	err := service.Verify(ctx, uid, "654321")
	assert.ErrorIs(err, ErrTooManyAttempts)
}

func TestVerifyExhaustedCodeStaysExhausted(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	code := &db.LoginCodeData{
		ID:        1,
		UserID:    uid,
		Code:      "123456",
		Attempts:  3,
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}

	dataStore.On("LatestValidCode", ctx, uid).Return(code, nil)

	// even the correct code fails once the attempt budget is spent
	err := service.Verify(ctx, uid, "123456")
	assert.ErrorIs(err, ErrTooManyAttempts)
}

func TestVerifyMatchConsumesCode(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	code := &db.LoginCodeData{
		ID:        1,
		UserID:    uid,
		Code:      "123456",
		Attempts:  1,
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}

	dataStore.On("LatestValidCode", ctx, uid).Return(code, nil)
	dataStore.On("MarkCodeUsed", ctx, 1).Return(true, nil)
	dispatcher.On("Dispatch", mock.Anything).Return()

	err := service.Verify(ctx, uid, "123456")
	assert.Nil(err)
}

func TestVerifyMatchLosesConsumptionRace(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewChallengeStore(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	mailer := mocks.NewCodeSender(t)
	service := NewTwoFactorChallenge(dataStore, logger, challengeConfig(), mailer, dispatcher)
	ctx := context.Background()
	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	code := &db.LoginCodeData{
		ID:        1,
		UserID:    uid,
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(time.Minute),
	}

	dataStore.On("LatestValidCode", ctx, uid).Return(code, nil)
	dataStore.On("MarkCodeUsed", ctx, 1).Return(false, nil)

	err := service.Verify(ctx, uid, "123456")
	assert.ErrorIs(err, ErrCodeExpired)
}
