package main

import (
	"log"

	"github.com/stellar/cexdemo/cmd"
)

func main() {
	e := cmd.RootCmd.Execute()
	if e != nil {
		log.Fatal(e)
	}
}
