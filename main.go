package main

import (
	"os"

	"github.com/rightdoers/doers-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
