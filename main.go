package main

import (
	"os"

	"github.com/lpforge/lpforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
