package main

import (
	"context"
	"fmt"
	"os"

	"deadlines/internal/cli"
	"deadlines/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.DefaultConfigPath(), openBusinessAPI)

	err := root.Execute(context.Background())
	if closeErr := root.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
