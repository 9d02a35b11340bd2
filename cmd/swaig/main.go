// Command swaig serves SignalWire AI Gateway functions and talks to remote SWAIG endpoints.
package main

import "swaig/internal/cli"

var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
