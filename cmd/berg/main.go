package main

import (
	"os"

	"github.com/cwbudde/go-berg/cmd/berg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
