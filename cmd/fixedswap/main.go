package main

import (
	"os"

	"fixedswap/cmd/fixedswap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
