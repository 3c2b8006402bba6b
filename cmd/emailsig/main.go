package main

import (
	"os"

	"github.com/goliatone/go-emailsig/cmd/emailsig/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
