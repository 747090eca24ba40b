package main

import (
	"os"

	"github.com/rustyeddy/tradebrain/cmd/tradebrain/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
