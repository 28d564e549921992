package main

import (
	"os"

	"github.com/jeet-integrated/elvproposal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
