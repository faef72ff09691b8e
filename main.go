// Package main is the entry point for the streamlens CLI.
package main

import "streamlens.dev/pkg/streamlens/cmd"

func main() {
	cmd.Execute()
}
