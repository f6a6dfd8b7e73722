// Command ferroc is the CLI entry point (spec.md §6): transpile, parse, and
// test subcommands wired in package cli.
package main

import "ferroc/cli"

func main() {
	cli.Execute()
}
