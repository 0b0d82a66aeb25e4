package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount string
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node",
	Run: func(cmd *cobra.Command, args []string) {
		tx := struct {
			Sender    string `json:"sender"`
			Recipient string `json:"recipient"`
			Amount    string `json:"amount"`
		}{
			Sender:    from,
			Recipient: to,
			Amount:    amount,
		}

		data, err := json.Marshal(tx)
		if err != nil {
			log.Fatal(err)
		}

		resp, err := http.Post(fmt.Sprintf("%s/v1/tx/add", url), "application/json", bytes.NewBuffer(data))
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		var result struct {
			Message string `json:"message"`
			Block   uint64 `json:"block"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			log.Fatal(err)
		}

		if resp.StatusCode != http.StatusCreated {
			pterm.Error.Printfln("transaction rejected: %s", result.Error)
			return
		}

		box := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
		box.WithTitle(pterm.LightGreen("|TRANSACTION|")).WithTitleTopCenter().
			Printfln("%s -> %s : %s\nexpected block: %d", from, to, amount, result.Block)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Sender label.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Recipient label.")
	sendCmd.Flags().StringVarP(&amount, "amount", "a", "0", "Amount to send.")
}
