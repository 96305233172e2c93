package progress

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndicator_Disabled(t *testing.T) {
	ind := NewIndicator(Config{Enabled: false}, ProcessingMessage)

	ind.SetActive(true)
	assert.True(t, ind.Active())
	ind.SetActive(true)
	ind.SetActive(false)
	assert.False(t, ind.Active())
	ind.SetActive(false)
}

func TestIndicator_Enabled(t *testing.T) {
	var buf bytes.Buffer
	ind := NewIndicator(Config{Enabled: true, Writer: &buf}, ProcessingMessage)

	ind.SetActive(true)
	assert.True(t, ind.Active())
	ind.SetActive(false)
	assert.False(t, ind.Active())
}

func TestSpinner_StopTwice(t *testing.T) {
	s := Start(Config{Enabled: true, Writer: &bytes.Buffer{}}, "Working")
	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err == nil {
		defer f.Close()
		assert.False(t, IsTTY(f))
	}
	assert.True(t, ShouldShowProgress(true))
}
