package main

import (
	"os"

	"github.com/solatis/codemint/cmd/codemint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
