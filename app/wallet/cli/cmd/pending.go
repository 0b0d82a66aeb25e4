package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// pendingCmd represents the pending command.
var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the transactions waiting to be mined",
	Run: func(cmd *cobra.Command, args []string) {
		var txs []struct {
			Sender    string  `json:"sender"`
			Recipient string  `json:"recipient"`
			Amount    float64 `json:"amount"`
		}
		if err := get("/v1/tx/uncommitted/list", &txs); err != nil {
			log.Fatal(err)
		}

		if len(txs) == 0 {
			pterm.Info.Println("no pending transactions")
			return
		}

		rows := pterm.TableData{{"sender", "recipient", "amount"}}
		for _, tx := range txs {
			rows = append(rows, []string{tx.Sender, tx.Recipient, pterm.Sprintf("%.2f", tx.Amount)})
		}

		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
