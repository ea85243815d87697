package main

import "github.com/tilecast/tilecast/cmd"

// Version is set via ldflags during build
var version = "0.3.0-dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
