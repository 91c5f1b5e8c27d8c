// Package main is the csvprobe entrypoint.
package main

import (
	"os"

	"github.com/leapstack-labs/csvprobe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
