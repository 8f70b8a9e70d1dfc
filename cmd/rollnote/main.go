// Package main provides rollnote, a converter from sourcebook text archives
// to Obsidian vaults with self-rolling random tables.
package main

import (
	"os"
	"strings"

	"github.com/rollnote/rollnote/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
