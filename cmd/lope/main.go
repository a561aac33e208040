package main

import (
	"os"

	"github.com/kyaoi/lope/cmd/lope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
