package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Run conflict resolution against the node's peers",
	Run: func(cmd *cobra.Command, args []string) {
		var result struct {
			Message  string `json:"message"`
			Replaced bool   `json:"replaced"`
		}
		if err := get("/v1/resolve", &result); err != nil {
			log.Fatal(err)
		}

		if result.Replaced {
			pterm.Warning.Println(result.Message)
			return
		}
		pterm.Success.Println(result.Message)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
