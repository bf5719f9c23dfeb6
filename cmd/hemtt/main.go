package main

import "os"

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
