package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProcessingMessage is the label shown while an upload is in flight.
const ProcessingMessage = "Processing…"

// Config controls whether the spinner is drawn and where.
type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Spinner is one running indeterminate progress line.
type Spinner struct {
	container *mpb.Progress
	bar       *mpb.Bar
	enabled   bool
	once      sync.Once
}

// Start shows message next to a spinner. A disabled config returns a no-op spinner.
func Start(config Config, message string) *Spinner {
	if !config.Enabled {
		return &Spinner{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	bar := container.New(0,
		mpb.SpinnerStyle(),
		mpb.PrependDecorators(
			decor.Name(message+" ", decor.WC{W: len(message) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace),
		),
		mpb.BarRemoveOnComplete(),
	)

	return &Spinner{
		container: container,
		bar:       bar,
		enabled:   true,
	}
}

// Stop removes the spinner line and waits for the renderer to finish.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.once.Do(func() {
		s.bar.Abort(true)
		s.container.Wait()
	})
}

// Indicator shows a spinner while active, for wiring to state callbacks.
type Indicator struct {
	config  Config
	message string

	mu      sync.Mutex
	current *Spinner
}

// NewIndicator creates an indicator labelled message.
func NewIndicator(config Config, message string) *Indicator {
	return &Indicator{config: config, message: message}
}

// SetActive starts or stops the spinner. Repeated calls with the same value are no-ops.
func (i *Indicator) SetActive(active bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	switch {
	case active && i.current == nil:
		i.current = Start(i.config, i.message)
	case !active && i.current != nil:
		i.current.Stop()
		i.current = nil
	}
}

// Active reports whether a spinner is showing.
func (i *Indicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.current != nil
}

// IsTTY reports whether writer is a terminal.
func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress enables progress output on a terminal unless forced.
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	return IsTTY(os.Stderr)
}
