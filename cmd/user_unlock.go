package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/veitlor/libram/mailing"
)

var unlockUserCommand = cobra.Command{
	Use:   "unlock",
	Short: "unlocks a user",
	Long:  `Lifts a failed-login lockout and resets the failure counter`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("user unlock (email) - requires a email")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		mailer := mailing.NewNoOpMailer(TopLevelLogger.Named("mailer"))
		lifecycle := resolveLifecycle(dataStore, mailer, dispatcher)
		found, id, err := dataStore.IDFromEmail(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Unable to unlock user: %s", err)
			os.Exit(1)
			return
		}
		if !found {
			fmt.Printf("Unable to unlock user %s: no such user", args[0])
			os.Exit(1)
			return
		}
		err = lifecycle.UnlockUser(cmd.Context(), id)
		if err != nil {
			fmt.Printf("Unable to unlock user: %s", err)
			os.Exit(1)
			return
		}
		fmt.Println("Unlocked user")
	},
}
