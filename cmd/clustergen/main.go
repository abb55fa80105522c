package main

import (
	"os"

	"github.com/teranos/clustergen/cmd/clustergen/commands"
	"github.com/teranos/clustergen/logger"
)

func main() {
	// Console warnings until the root command re-initializes from its flags
	if err := logger.Initialize(false, logger.VerbosityUser); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}

	root := commands.NewRootCmd()
	err := root.Execute()
	logger.Cleanup()
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
