package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transcripto/cmd/transcripto/cmd/backend"
	"transcripto/cmd/transcripto/cmd/common"
	"transcripto/cmd/transcripto/cmd/record"
	"transcripto/cmd/transcripto/cmd/serve"
	"transcripto/cmd/transcripto/cmd/upload"
	"transcripto/cmd/transcripto/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcripto",
	Short: "Record or upload audio and get a transcript and summary back",
	Long: `Transcripto captures audio from the microphone or takes an existing media file,
sends it through the upload relay to the transcription backend and prints the
transcript and summary.

- serve runs the relay (POST /api/upload)
- backend runs a reference transcription backend (mock or OpenAI)
- upload and record act as the client`,
	SilenceUsage:     true,
	SilenceErrors:    true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, common.ErrRendered) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(backend.Cmd)
	rootCmd.AddCommand(upload.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&common.Verbose, "verbose", "V", false, "verbose output")
}
