package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// build flags
var version string
var buildDate string
var gitHash string

const rootShort = "cexdemo walks through the trading and withdrawal operations of a centralized exchange account."
const rootLong = `cexdemo walks through the trading and withdrawal operations of a centralized exchange account.

It prints the ticker, balances and open orders of the account, places market buys and
withdraws funds to a destination registered with the exchange. Every outcome is printed
to the console and a failed operation never stops the remaining ones.`
const cexdemoExamples = runExamples + "\n  cexdemo run --help"

// RootCmd is the main command for this repo
var RootCmd = &cobra.Command{
	Use:     "cexdemo",
	Short:   rootShort,
	Long:    rootLong,
	Example: cexdemoExamples,
	Run: func(ccmd *cobra.Command, args []string) {
		intro := `
   ___ _____  __  ___  ___ __  __  ___  
  / __| __\ \/ / |   \| __|  \/  |/ _ \ 
 | (__| _| >  <  | |) | _|| |\/| | (_) |
  \___|___/_/\_\ |___/|___|_|  |_|\___/ 

`
		fmt.Println(intro)
		e := ccmd.Help()
		if e != nil {
			log.Fatal(e)
		}

		fmt.Println("version:", version)
		fmt.Println("build date:", buildDate)
		fmt.Println("git hash:", gitHash)
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	for _, stepCmd := range makeStepCmds() {
		RootCmd.AddCommand(stepCmd)
	}
	RootCmd.AddCommand(exchangesCmd)
	RootCmd.AddCommand(genconfCmd)
	RootCmd.AddCommand(versionCmd)
}
