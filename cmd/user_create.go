package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/veitlor/libram/auth"
	"github.com/veitlor/libram/mailing"
	"golang.org/x/term"
)

var userCreateCommand = cobra.Command{
	Use:   "create",
	Short: "launches a on terminal user creation dialog",
	Long:  `this command may be used to create a user account from command line`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		//CLI created users are auto confirmed, no mail leaves the box
		mailer := mailing.NewNoOpMailer(TopLevelLogger.Named("mailer"))
		reader := bufio.NewReader(os.Stdin)

		fmt.Println("username?")
		username, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read username: %s", err)
			os.Exit(1)
			return
		}
		username = strings.Trim(username, " \t\r\n")

		fmt.Println("email?")
		email, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read email: %s", err)
			os.Exit(1)
			return
		}
		email = strings.Trim(email, " \t\r\n")

		fmt.Println("role? (admin/supervisor/librarian/member)")
		roleInput, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read role: %s", err)
			os.Exit(1)
			return
		}
		role, err := auth.ParseRole(strings.Trim(roleInput, " \t\r\n"))
		if err != nil {
			fmt.Printf("Unable to create user: %s \r\n", err)
			os.Exit(1)
			return
		}

		fmt.Println("password?")
		pwd, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Printf("Unable to read password: %s", err)
			os.Exit(1)
			return
		}
		for len(pwd) < LoadedConfig.Behaviour.PasswordMinLength {
			fmt.Printf(
				"password needs to be at least %d long.\r\n",
				LoadedConfig.Behaviour.PasswordMinLength,
			)
			fmt.Println("password?")
			pwd, err = term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read password: %s", err)
				os.Exit(1)
				return
			}
		}
		//auto confirm CLI users
		LoadedConfig.Behaviour.AutoConfirmUsers = true
		lifecycle := resolveLifecycle(dataStore, mailer, dispatcher)
		id, err := lifecycle.Register(cmd.Context(), username, email, string(pwd), role, nil)
		if err != nil {
			fmt.Printf("Unable to create user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created user for email %s with id: %v", email, id)
	},
}
