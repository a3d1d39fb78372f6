package main

import (
	"os"

	"agentgauge/cmd/agentgauge/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
