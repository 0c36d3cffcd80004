package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/veitlor/libram/api"
	"github.com/veitlor/libram/api/app/account"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/tokens"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root - might wanna shift that somewhere else later

		//setup datastore
		dataStore := mustResolveUsableDataStore()
		//load translations
		registry := mustResolveTranslationRegistry()

		//setup token issuer
		issuer := tokens.NewIssuer(TopLevelLogger.Named("token_issuer"), LoadedConfig.JWT)

		//setup mailer
		mailer := mustResolveMailer(registry)

		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		//setup auth services
		verifier := auth.NewCredentialVerifier(
			dataStore,
			TopLevelLogger.Named("credential_verifier"),
			LoadedConfig.Behaviour,
			dispatcher,
		)
		challenge := auth.NewTwoFactorChallenge(
			dataStore,
			TopLevelLogger.Named("two_factor_challenge"),
			LoadedConfig,
			mailer,
			dispatcher,
		)
		lifecycle := resolveLifecycle(dataStore, mailer, dispatcher)
		session := auth.NewSessionEstablisher(
			dataStore,
			TopLevelLogger.Named("session_establisher"),
			LoadedConfig,
			dispatcher,
		)

		//setup token verifier
		tokenVerifier := tokens.NewTokenVerifier(TopLevelLogger.Named("token_verifier"), issuer)

		deps := &account.Dependencies{
			Verifier:  verifier,
			Challenge: challenge,
			Lifecycle: lifecycle,
			Session:   session,
			Users:     dataStore,
			Issuer:    issuer,
			Tokens:    tokenVerifier,
		}

		server, err := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			issuer,
			tokenVerifier,
			deps,
			registry,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		err = server.Start()
		if err != nil {
			TopLevelLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}

func init() {
	viper.SetDefault("port", "3000")
	viper.SetDefault("log_level", "debug")
}
