package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"transcripto/cmd/transcripto/cmd/common"
	"transcripto/internal/app/capture"
	"transcripto/internal/app/media"
)

var flags common.ClientFlags
var contentType string

func init() {
	common.AddClientFlags(Cmd, &flags)
	Cmd.Flags().StringVarP(&contentType, "type", "t", "",
		"declared MIME type of the file (detected from the extension and content when empty)")
}

// Cmd represents the upload command
var Cmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload an audio or video file for transcription",
	Long: `Upload an audio or video file for transcription

- The file is checked against the supported types before anything is sent
- Accepted: webm, wav, mp3, m4a, ogg, mp4, mpeg, mov
- The transcript and summary are printed to stdout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		name := filepath.Base(path)
		declared := contentType
		if declared == "" {
			declared = media.DetectContentType(name, data)
		}

		session := common.NewSession(cmd, &flags, nil)
		input := capture.NewFileInput(session.Controller)
		_ = input.Select(cmd.Context(), media.NewBlob(name, declared, data))
		return session.Finish(cmd)
	},
}
