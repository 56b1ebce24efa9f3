// Command convokit annotates time-aligned transcripts with conversational
// timing markers and serves the same pipeline over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
