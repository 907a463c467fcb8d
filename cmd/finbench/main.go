// cmd/finbench/main.go
package main

import (
	finbench "github.com/MahirManghnani/finbench/internal/commands"
)

// Populated at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the finbench CLI application by delegating to the cobra root
// command. It does not take any arguments and does not return a value.
func main() {
	finbench.SetVersionInfo(version, commit, date)
	finbench.Execute()
}
