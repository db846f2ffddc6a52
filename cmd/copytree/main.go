// Package main is the entry point for the copytree CLI tool.
package main

import (
	"os"

	"copytree/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
