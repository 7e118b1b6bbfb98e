// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Passgen.
//
// Usage:
//
//	go run . [flags]
//	./passgen [command] [flags]
//
// Without a command the interactive TUI is started when stdout is a
// terminal. See --help for options.
package main

import (
	"fmt"
	"os"

	"github.com/toeirei/passgen/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "passgen: %v\n", err)
		os.Exit(1)
	}
}
