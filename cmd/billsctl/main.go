package main

import (
	"os"

	"github.com/garyjia/expense-bills/cmd/billsctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
