package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var libraryCreateCommand = cobra.Command{
	Use:   "create",
	Short: "creates a library tenant",
	Long: `Creates a library tenant, expects a name and a slug,
	an optional third argument sets the subscription end date (RFC3339)`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 || args[0] == "" || args[1] == "" {
			return errors.New("library create (name) (slug) [subscription-end] - requires a name and a slug")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		var subscriptionEnd *time.Time
		if len(args) > 2 {
			parsed, err := time.Parse(time.RFC3339, args[2])
			if err != nil {
				fmt.Printf("Unable to parse subscription end date: %s", err)
				os.Exit(1)
				return
			}
			subscriptionEnd = &parsed
		}
		id, err := dataStore.InsertLibrary(cmd.Context(), args[0], args[1], subscriptionEnd)
		if err != nil {
			fmt.Printf("Unable to create library: %s", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created library %s with id: %d", args[0], id)
	},
}
