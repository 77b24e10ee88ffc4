// Package main is the entry point for the timekeeper TUI. It loads the
// configuration, wires the services and runs the Bubble Tea program or one
// of the maintenance subcommands.
package main

func main() {
	Execute()
}
