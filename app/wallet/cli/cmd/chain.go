package cmd

import (
	"log"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// block mirrors the node's serialized block format.
type block struct {
	Index        uint64  `json:"index"`
	Timestamp    float64 `json:"timestamp"`
	Proof        uint64  `json:"proof"`
	PrevHash     *string `json:"previous_hash"`
	Transactions []struct {
		Sender    string  `json:"sender"`
		Recipient string  `json:"recipient"`
		Amount    float64 `json:"amount"`
	} `json:"transactions"`
}

// chainCmd represents the chain command.
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Display the node's full chain",
	Run: func(cmd *cobra.Command, args []string) {
		var result struct {
			Chain  []block `json:"chain"`
			Length int     `json:"length"`
		}
		if err := get("/v1/chain/list", &result); err != nil {
			log.Fatal(err)
		}

		box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
		for _, blk := range result.Chain {
			prev := "none (genesis)"
			if blk.PrevHash != nil {
				prev = *blk.PrevHash
			}

			content := pterm.Sprintfln("proof: %d\nprevious: %s", blk.Proof, prev)
			for _, tx := range blk.Transactions {
				content += pterm.Sprintfln("%s -> %s : %.2f", tx.Sender, tx.Recipient, tx.Amount)
			}

			box.WithTitle(pterm.LightCyan(pterm.Sprintf("block %d", blk.Index))).
				WithTitleTopLeft().
				Println(content)
		}

		pterm.Info.Printfln("chain length: %d", result.Length)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}
