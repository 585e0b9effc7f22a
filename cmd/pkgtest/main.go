// Package main is the entry point for the pkgtest CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/pkgtest/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
