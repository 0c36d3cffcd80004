package mailing

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"html/template"

	"github.com/go-mail/mail"
	"github.com/jaytaylor/html2text"
	"github.com/veitlor/libram/config"
	"github.com/veitlor/libram/i18n"
	"go.uber.org/zap"
)

// Mailer renders the shared email template per locale and delivers
// over SMTP, or logs and drops everything in noop mode
type Mailer struct {
	noop          bool
	client        *mail.Dialer
	log           *zap.Logger
	cfg           *config.Configuration
	registry      *i18n.TranslationRegistry
	emailTemplate *template.Template
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.Behaviour.Name
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["site"] = m.cfg.Behaviour.Site
	b["title"] = title
	b["message"] = message
	return b
}

// SendVerificationMail mails the account verification link and token
func (m *Mailer) SendVerificationMail(email string, token string, language string) error {
	if m.noop {
		m.log.Info("skipping email `Verification` because noop is configured",
			zap.String("token", token))
		return nil
	}
	t, err := m.registry.TranslatorFor(language, "email.verify")
	if err != nil {
		m.log.Error(
			"unable to load translation for `email.verify`",
			zap.String("language", language),
		)
		t = m.registry.CreateVoidTranslator(language, "email.verify")
	}
	base := m.baseModel(t.T("title"), t.T("message"))
	base["link_text"] = t.T("link_text")
	base["link"] = fmt.Sprintf(
		"%s/auth/confirm?token=%s",
		m.cfg.Behaviour.ServiceDomain,
		token,
	)
	base["token_text"] = t.T("token_text")
	base["token"] = token
	base["subject"] = t.T("subject")
	return m.send(email, t.T("subject"), base)
}

// SendLoginCodeMail mails the second factor digit code
func (m *Mailer) SendLoginCodeMail(
	email string,
	code string,
	expiry time.Duration,
	language string,
) error {
	if m.noop {
		m.log.Info("skipping email `LoginCode` because noop is configured",
			zap.String("code", code))
		return nil
	}
	t, err := m.registry.TranslatorFor(language, "email.login_code")
	if err != nil {
		t = m.registry.CreateVoidTranslator(language, "email.login_code")
	}
	base := m.baseModel(t.T("title"), t.T("message"))
	base["token_text"] = t.T("token_text")
	base["token"] = code
	base["expiry"] = fmt.Sprintf("%d", int(expiry.Minutes()))
	base["subject"] = t.T("subject")
	return m.send(email, t.T("subject"), base)
}

// SendPasswordResetMail mails the password reset link and token
func (m *Mailer) SendPasswordResetMail(email string, token string, language string) error {
	if m.noop {
		m.log.Info("skipping email `PasswordReset` because noop is configured",
			zap.String("token", token))
		return nil
	}
	t, err := m.registry.TranslatorFor(language, "email.reset_password")
	if err != nil {
		t = m.registry.CreateVoidTranslator(language, "email.reset_password")
	}
	base := m.baseModel(t.T("title"), t.T("message"))
	base["link_text"] = t.T("link_text")
	base["link"] = fmt.Sprintf(
		"%s/auth/reset?token=%s",
		m.cfg.Behaviour.ServiceDomain,
		token,
	)
	base["token_text"] = t.T("token_text")
	base["token"] = token
	base["subject"] = t.T("subject")
	return m.send(email, t.T("subject"), base)
}

func (m *Mailer) SendTestEmail(email string) error {
	if m.noop {
		return errors.New("smtp is not enabled, nothing to test")
	}
	base := m.baseModel("This is a test", "hey your email configuration seems to be fine.")
	base["subject"] = "Your test email is here!"
	base["token"] = "test"
	base["token_text"] = "test"
	base["link"] = ""
	base["link_text"] = ""
	return m.send(email, "Your test email is here!", base)
}

func (m *Mailer) send(email string, subject string, viewModel map[string]interface{}) error {
	buffer := new(strings.Builder)
	err := m.emailTemplate.Execute(buffer, viewModel)
	if err != nil {
		return err
	}
	html := buffer.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetAddressHeader("To", email, "")
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)
	return m.client.DialAndSend(msg)
}

func NewMailer(
	log *zap.Logger,
	cfg *config.Configuration,
	registry *i18n.TranslationRegistry,
	files fs.FS,
) (*Mailer, error) {
	t, err := template.ParseFS(files, "template.html")
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          !cfg.SMTP.Enabled,
		log:           log,
		registry:      registry,
		emailTemplate: t,
		cfg:           cfg,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

func NewNoOpMailer(log *zap.Logger) *Mailer {
	return &Mailer{
		noop: true,
		log:  log,
	}
}
