package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// mineCmd represents the mine command.
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the next block",
	Run: func(cmd *cobra.Command, args []string) {
		spinner, _ := pterm.DefaultSpinner.Start("mining...")

		var result struct {
			Message string `json:"message"`
			Index   uint64 `json:"index"`
			Reward  float64 `json:"reward"`
		}
		if err := get("/v1/mine", &result); err != nil {
			spinner.Fail(err.Error())
			log.Fatal(err)
		}

		spinner.Success(result.Message)
		pterm.Info.Printfln("reward: %.0f", result.Reward)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
