package main

import (
	"os"

	"github.com/ekoester/lectern/cmd/lectern/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
