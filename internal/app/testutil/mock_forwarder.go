package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"transcripto/internal/app/relay"
)

// MockForwarder is a mock implementation of relay.Forwarder
type MockForwarder struct {
	mock.Mock
}

func NewMockForwarder(t *testing.T) *MockForwarder {
	m := &MockForwarder{}
	m.Test(t)
	return m
}

// Forward drains the upload body so callers observe a consumed request,
// then returns the configured outcome.
func (m *MockForwarder) Forward(ctx context.Context, upload relay.Upload) relay.Outcome {
	if upload.Body != nil {
		_, _ = io.Copy(io.Discard, upload.Body)
	}
	args := m.Called(ctx, upload)
	return args.Get(0).(relay.Outcome)
}

func (m *MockForwarder) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockForwarder) BaseURL() string {
	return "http://mock-backend"
}
