package main

import (
	"os"

	"github.com/thalib/oranum/cmd/oranum/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
