package main

import (
	"os"

	"github.com/penwyp/vapi-transcripts/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
