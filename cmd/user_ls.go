package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/veitlor/libram/db"
)

var listUsersCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all users",
	Long:  `This will list all users, an optional FIQL filter may be passed as argument`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		lst, total, err := dataStore.Users(context.Background(), db.ListOptions{
			Page:     1,
			PageSize: math.MaxInt32,
			Query:    query,
		})
		if err != nil {
			fmt.Printf("Unable to load users: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\r\n",
			"ID",
			"Username",
			"Email",
			"Role",
			"Library",
			"Status",
			"LockoutTill",
			"LastSignIn",
		)
		for _, v := range lst {
			library := "-"
			if v.LibraryID != nil {
				library = fmt.Sprintf("%d", *v.LibraryID)
			}
			fmt.Fprintf(
				w,
				"%s\t%s\t%s\t%s\t%s\t%s\t%v\t%v \r\n",
				v.ID,
				v.Username,
				v.Email,
				v.Role,
				library,
				v.Status,
				v.LockoutTill,
				v.LastSignIn,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", total)
		w.Flush()
	},
}
