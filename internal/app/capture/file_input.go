package capture

import (
	"context"
	"sync"

	"transcripto/internal/app/media"
)

// FileInput models a file picker widget. Its selection is cleared after
// every pick so that choosing the same file again triggers a new upload.
type FileInput struct {
	controller *Controller

	mu       sync.Mutex
	selected *media.Blob
}

// NewFileInput binds a picker to controller.
func NewFileInput(controller *Controller) *FileInput {
	return &FileInput{controller: controller}
}

// Select hands file to the controller and resets the selection.
func (f *FileInput) Select(ctx context.Context, file media.Blob) error {
	f.mu.Lock()
	f.selected = &file
	f.mu.Unlock()

	defer f.reset()
	return f.controller.FilePicked(ctx, file)
}

// Value returns the current selection, which is empty outside Select.
func (f *FileInput) Value() (media.Blob, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return media.Blob{}, false
	}
	return *f.selected, true
}

func (f *FileInput) reset() {
	f.mu.Lock()
	f.selected = nil
	f.mu.Unlock()
}
