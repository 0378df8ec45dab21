package main

import (
	"os"

	"github.com/taskmaster/taskflow/cmd/taskflow/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
