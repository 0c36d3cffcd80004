package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veitlor/libram/cmd"
	"github.com/veitlor/libram/config"
	"go.uber.org/zap"
)

//go:embed templates/email/template.html
//go:embed templates/i18n
var templates embed.FS

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("libram %s, built %s from %s (%s)", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()

	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("smtp.enabled", false)
	viper.SetDefault("behaviour.default-locale", "en")
	viper.SetDefault("behaviour.auto-confirm-users", false)
	viper.SetDefault("behaviour.auto-lockout-count", 5)
	viper.SetDefault("behaviour.auto-lockout-duration", "30m")
	viper.SetDefault("behaviour.password-min-length", 6)
	viper.SetDefault("behaviour.verification-window", "24h")
	viper.SetDefault("behaviour.reset-token-expiry", "1h")
	viper.SetDefault("two-factor.code-length", 6)
	viper.SetDefault("two-factor.code-expiry", "5m")
	viper.SetDefault("two-factor.max-attempts", 3)
	viper.SetDefault("jwt.remember-me-duration", "720h")
	viper.SetDefault("jwt.exp", "900s")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String(to, to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("LIBRAM_PORT", "server.port")
	bind("LIBRAM_ADDRESS", "server.address")

	bind("LIBRAM_SMTP_ENABLED", "smtp.enabled")
	bind("LIBRAM_SMTP_HOST", "smtp.host")
	bind("LIBRAM_SMTP_PORT", "smtp.port")
	bind("LIBRAM_SMTP_USERNAME", "smtp.username")
	bind("LIBRAM_SMTP_PASSWORD", "smtp.password")
	bind("LIBRAM_SMTP_DISPLAYNAME", "smtp.display-name")
	bind("LIBRAM_SMTP_ADDRESS", "smtp.address")

	bind("LIBRAM_DATABASE_TYPE", "database.type")
	bind("LIBRAM_DATABASE_DSN", "database.dsn")

	bind("LIBRAM_BEHAVIOUR_NAME", "behaviour.name")
	bind("LIBRAM_BEHAVIOUR_SITE", "behaviour.site")
	bind("LIBRAM_BEHAVIOUR_SERVICE_DOMAIN", "behaviour.service-domain")
	bind("LIBRAM_BEHAVIOUR_DEFAULT_LOCALE", "behaviour.default-locale")
	bind("LIBRAM_BEHAVIOUR_AUTO_CONFIRM_USERS", "behaviour.auto-confirm-users")
	bind("LIBRAM_BEHAVIOUR_AUTO_LOCKOUT_COUNT", "behaviour.auto-lockout-count")
	bind("LIBRAM_BEHAVIOUR_AUTO_LOCKOUT_DURATION", "behaviour.auto-lockout-duration")
	bind("LIBRAM_BEHAVIOUR_PASSWORD_MIN_LENGTH", "behaviour.password-min-length")
	bind("LIBRAM_BEHAVIOUR_VERIFICATION_WINDOW", "behaviour.verification-window")
	bind("LIBRAM_BEHAVIOUR_RESET_TOKEN_EXPIRY", "behaviour.reset-token-expiry")

	bind("LIBRAM_TWO_FACTOR_CODE_LENGTH", "two-factor.code-length")
	bind("LIBRAM_TWO_FACTOR_CODE_EXPIRY", "two-factor.code-expiry")
	bind("LIBRAM_TWO_FACTOR_MAX_ATTEMPTS", "two-factor.max-attempts")

	bind("LIBRAM_JWT_AUDIENCE", "jwt.aud")
	bind("LIBRAM_JWT_ISSUER", "jwt.iss")
	bind("LIBRAM_JWT_ALG", "jwt.alg")
	bind("LIBRAM_JWT_EXP", "jwt.exp")

	bind("LIBRAM_JWT_HMAC_SIGNING_KEY", "jwt.hmac-signing-key")
	bind("LIBRAM_JWT_HMAC_SIGNING_KEY_FILE", "jwt.hmac-signing-key-file")

	bind("LIBRAM_JWT_RSA_PRIVATE_KEY", "jwt.rsa-private-key")
	bind("LIBRAM_JWT_RSA_PRIVATE_KEY_FILE", "jwt.rsa-private-key-file")

	bind("LIBRAM_JWT_RSA_PUBLIC_KEY", "jwt.rsa-public-key")
	bind("LIBRAM_JWT_RSA_PUBLIC_KEY_FILE", "jwt.rsa-public-key-file")

	bind("LIBRAM_JWT_REMEMBER_ME_DURATION", "jwt.remember-me-duration")

	bind("LIBRAM_CORS_ALLOWED_ORIGINS", "cors.allowed-origins")
	bind("LIBRAM_CORS_ALLOWED_METHODS", "cors.allowed-methods")
	bind("LIBRAM_CORS_ALLOW_CREDENTIALS", "cors.allow-credentials")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", cmd.ConfigFileLocation))
		viper.SetConfigFile(cmd.ConfigFileLocation)
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No confg file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf

	email, err := fs.Sub(templates, "templates/email")
	if err != nil {
		logger.Fatal("Unable to open templates/email folder")
	}
	cmd.FileSystemsConfig = &config.FileSystems{
		I18n:  templates,
		Email: email,
	}
}
