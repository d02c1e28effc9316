package main

import (
	"os"

	"github.com/kohljary/driftwatch/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
