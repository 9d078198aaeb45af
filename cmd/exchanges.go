package cmd

import (
	"fmt"

	"github.com/stellar/cexdemo/plugins"

	"github.com/spf13/cobra"
)

var exchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "Lists the available exchange integrations",
}

func init() {
	exchangesCmd.Run = func(ccmd *cobra.Command, args []string) {
		fmt.Printf("  Exchange\tWithdraw By\tDescription\n")
		fmt.Printf("  --------------------------------------------------------------------------------\n")
		exchanges := plugins.Exchanges()
		for _, name := range plugins.ExchangeNames() {
			c := exchanges[name]
			fmt.Printf("  %-14s%-16s%s\n", name, withdrawMode(c), c.Description)
		}
	}
}

func withdrawMode(c plugins.ExchangeContainer) string {
	if c.WithdrawByLabel {
		return "label"
	}
	return "address book"
}
