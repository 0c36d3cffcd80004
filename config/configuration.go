package config

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// ServerConfiguration contains the http server settings
type ServerConfiguration struct {
	Port    int
	Address string
}

// SMTPConfiguration contains the email settings
type SMTPConfiguration struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string `json:"-"`
	// DisplayName will be displayed as email sender
	DisplayName string `mapstructure:"display-name"`
	// Address is the sender address
	Address string
}

// DatabaseConfiguration contains the settings required to connect to a database
type DatabaseConfiguration struct {
	Type string
	DSN  string `json:"-"`
}

// BehaviourConfiguration configures how the service will behave
type BehaviourConfiguration struct {
	Name                string
	Site                string
	ServiceDomain       string        `mapstructure:"service-domain"`
	DefaultLocale       string        `mapstructure:"default-locale"`
	AutoConfirmUsers    bool          `mapstructure:"auto-confirm-users"`
	AutoLockoutCount    int           `mapstructure:"auto-lockout-count"`
	AutoLockoutDuration time.Duration `mapstructure:"auto-lockout-duration"`
	PasswordMinLength   int           `mapstructure:"password-min-length"`
	// VerificationWindow is how long an emailed verification link stays usable
	VerificationWindow time.Duration `mapstructure:"verification-window"`
	// ResetTokenExpiry is how long a password reset token stays usable
	ResetTokenExpiry time.Duration `mapstructure:"reset-token-expiry"`
}

// TwoFactorConfiguration configures the emailed one-time login codes
type TwoFactorConfiguration struct {
	CodeLength  int           `mapstructure:"code-length"`
	CodeExpiry  time.Duration `mapstructure:"code-expiry"`
	MaxAttempts int           `mapstructure:"max-attempts"`
}

// JWTConfiguration harbours the session token and remember token settings
type JWTConfiguration struct {
	Algorithm          string        `mapstructure:"alg"`
	Issuer             string        `mapstructure:"iss"`
	Audience           []string      `mapstructure:"aud"`
	Expiry             time.Duration `mapstructure:"exp"`
	HMACSigningKey     string        `mapstructure:"hmac-signing-key"      json:"-"`
	HMACSigningKeyFile string        `mapstructure:"hmac-signing-key-file"`

	RSAPrivateKey string `mapstructure:"rsa-private-key" json:"-"`
	RSAPublicKey  string `mapstructure:"rsa-public-key"  json:"-"`

	RSAPrivateKeyFile string `mapstructure:"rsa-private-key-file"`
	RSAPublicKeyFile  string `mapstructure:"rsa-public-key-file"`

	RememberMeDuration time.Duration `mapstructure:"remember-me-duration"`
}

// CORSConfiguration very basic cors configuration
type CORSConfiguration struct {
	AllowCredentials bool     `mapstructure:"allow-credentials"`
	AllowedMethods   []string `mapstructure:"allowed-methods"`
	AllowedOrigins   []string `mapstructure:"allowed-origins"`
}

// FileSystems contains the used file systems (either local or embedded)
type FileSystems struct {
	I18n  fs.FS
	Email fs.FS
}

// Configuration harbours the entire libram configuration
type Configuration struct {
	Server    *ServerConfiguration    `mapstructure:"server"`
	SMTP      *SMTPConfiguration      `mapstructure:"smtp"`
	Database  *DatabaseConfiguration  `mapstructure:"database"`
	Behaviour *BehaviourConfiguration `mapstructure:"behaviour"`
	TwoFactor *TwoFactorConfiguration `mapstructure:"two-factor"`
	JWT       *JWTConfiguration       `mapstructure:"jwt"`
	CORS      *CORSConfiguration      `mapstructure:"cors"`
}

// Validate does some basic validation of the config file and tries to be helpful on misconfiguration
func (c *Configuration) Validate() error {
	if c.Database == nil {
		return errors.New("no database configuration found")
	}
	if c.SMTP == nil {
		return errors.New("no SMTP configuration found")
	}
	if c.Behaviour == nil {
		return errors.New("no behaviour configuration found")
	}
	if c.TwoFactor == nil {
		return errors.New("no two-factor configuration found")
	}
	if c.TwoFactor.CodeLength < 4 {
		return errors.New("two-factor.code-length needs to be at least 4 digits")
	}
	if c.TwoFactor.MaxAttempts <= 0 {
		return errors.New("two-factor.max-attempts needs to be a positive number")
	}
	if c.JWT == nil {
		return errors.New("no JWT configuration found")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
		if c.JWT.HMACSigningKey == "" && c.JWT.HMACSigningKeyFile == "" {
			return errors.New(
				"when using jwt.alg HS256, HS384, HS512 you need to define either hmac-signing-key or hmac-signing-key-file",
			)
		}
	case "RS256", "RS384", "RS512":
		if c.JWT.RSAPublicKey == "" && c.JWT.RSAPublicKeyFile == "" {
			return errors.New(
				"when using jwt.alg RS256, RS384, RS512 you need to define either rsa-public-key or rsa-public-key-file",
			)
		}
		if c.JWT.RSAPrivateKey == "" && c.JWT.RSAPrivateKeyFile == "" {
			return errors.New(
				"when using jwt.alg RS256, RS384, RS512 you need to define either rsa-private-key or rsa-private-key-file",
			)
		}
	}
	if c.Server == nil {
		return errors.New("no server configuration found")
	}
	return nil
}

// DebugMode returns true if the LIBRAM_DEBUG_MODE variable is set
func (*Configuration) DebugMode() bool {
	if r := os.Getenv("LIBRAM_DEBUG_MODE"); r == "true" {
		return true
	}
	return false
}
