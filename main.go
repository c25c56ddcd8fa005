package main

import (
	"os"

	"github.com/conneroisu/modforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
