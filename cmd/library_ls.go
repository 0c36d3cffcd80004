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

var listLibrariesCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all library tenants",
	Long:  `This will list all library tenants, an optional FIQL filter may be passed as argument`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		lst, total, err := dataStore.Libraries(context.Background(), db.ListOptions{
			Page:     1,
			PageSize: math.MaxInt32,
			Query:    query,
		})
		if err != nil {
			fmt.Printf("Unable to load libraries: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\r\n",
			"ID",
			"Name",
			"Slug",
			"SubscriptionExpires",
		)
		for _, v := range lst {
			fmt.Fprintf(
				w,
				"%d\t%s\t%s\t%v \r\n",
				v.ID,
				v.Name,
				v.Slug,
				v.SubscriptionExpires,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", total)
		w.Flush()
	},
}
