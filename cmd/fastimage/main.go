// Package main is the entry point for the fastimage CLI.
package main

import (
	"os"

	"github.com/fastimage/go-fastimage/cmd/fastimage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
