package main

import (
	"os"

	"github.com/neha18-dp/freshbasket-aws-project/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
