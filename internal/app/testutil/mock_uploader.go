package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"transcripto/internal/app/capture"
	"transcripto/internal/app/media"
)

// MockUploader is a mock implementation of capture.Uploader
type MockUploader struct {
	mock.Mock
}

func NewMockUploader(t *testing.T) *MockUploader {
	m := &MockUploader{}
	m.Test(t)
	return m
}

func (m *MockUploader) Upload(ctx context.Context, blob media.Blob) (*capture.UploadResult, error) {
	args := m.Called(ctx, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capture.UploadResult), args.Error(1)
}
