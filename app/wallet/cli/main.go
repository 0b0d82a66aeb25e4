package main

import (
	"github.com/nprav/blockchain/app/wallet/cli/cmd"
)

func main() {
	cmd.Execute()
}
