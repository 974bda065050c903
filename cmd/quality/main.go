package main

import (
	"os"

	"go-data-quality/cmd/quality/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
