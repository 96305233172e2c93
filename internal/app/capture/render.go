package capture

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the result or error of v the way the page shows it.
// Nothing is written while recording or loading.
func Render(w io.Writer, v View) error {
	if v.State != Idle {
		return nil
	}
	if v.Err != "" {
		_, err := fmt.Fprintf(w, "Error: %s\n", v.Err)
		return err
	}
	if v.Result == nil {
		return nil
	}

	var b strings.Builder
	section(&b, "Transcript", v.Result.Transcript)
	if v.Result.Summary != "" {
		b.WriteString("\n")
		section(&b, "Summary", v.Result.Summary)
	}
	if v.Result.SummaryError != "" {
		fmt.Fprintf(&b, "\nSummary unavailable: %s\n", v.Result.SummaryError)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
	b.WriteString(strings.TrimSpace(body) + "\n")
}
