package main

import (
	"os"

	"github.com/isaacglide/lighthouse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
