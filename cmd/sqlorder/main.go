// Package main is the entry point for the sqlorder CLI binary.
package main

import (
	"os"

	cli "sqlorder/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
