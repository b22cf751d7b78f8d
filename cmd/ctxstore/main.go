package main

import (
	"os"

	"github.com/jpalmieri/ctxstore/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
