package mailing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestNoOpMailerSkipsDelivery(t *testing.T) {
	assert := assert.New(t)
	mailer := NewNoOpMailer(zaptest.NewLogger(t))

	// carries no smtp client or configuration, every send is a logged skip
	assert.NoError(mailer.SendVerificationMail("marion@example.com", "confirm-me", "en"))
	assert.NoError(mailer.SendLoginCodeMail("marion@example.com", "491062", time.Minute*5, "en"))
	assert.NoError(mailer.SendPasswordResetMail("marion@example.com", "reset-me", "en"))
}

func TestNoOpMailerRefusesTestMail(t *testing.T) {
	assert := assert.New(t)
	mailer := NewNoOpMailer(zaptest.NewLogger(t))
	assert.Error(mailer.SendTestEmail("marion@example.com"))
}
