package main

import (
	"fmt"
	"os"

	"transcripto/cmd/transcripto/cmd"
	"transcripto/internal/config"
)

// @title Transcripto Relay API
// @version 1.0
// @description Relays recorded or uploaded audio to the transcription backend and normalizes its reply.
// @BasePath /
func main() {
	// .env is optional; a broken one is reported but not fatal
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
