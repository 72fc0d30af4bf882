package main

import (
	"os"

	"github.com/picard-community/plugin-tools/cmd/ppt/cmd"
)

// main runs the plugin tools CLI. Cobra prints the failure message; the
// non-zero exit code is all that is left to do here.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
