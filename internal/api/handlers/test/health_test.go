package test

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"transcripto/internal/api/handlers"
	apperrors "transcripto/internal/app/errors"
	"transcripto/internal/app/testutil"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		backendErr     error
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:           "relay liveness",
			path:           "/health",
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "healthy", body["status"])
				assert.NotNil(t, body["timestamp"])
			},
		},
		{
			name:           "backend reachable",
			path:           "/api/health/backend",
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "healthy", body["status"])
				assert.Equal(t, "http://mock-backend", body["backend_url"])
			},
		},
		{
			name:           "backend unreachable",
			path:           "/api/health/backend",
			backendErr:     apperrors.ProxyTransportError(stderrors.New("connection refused")),
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "unhealthy", body["status"])
				assert.Equal(t, "connection refused", body["detail"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			forwarder := testutil.NewMockForwarder(t)
			if tt.path == "/api/health/backend" {
				forwarder.On("HealthCheck", mock.Anything).Return(tt.backendErr).Once()
			}

			handler := handlers.NewHealthHandler(forwarder)
			router.GET("/health", handler.Relay)
			router.GET("/api/health/backend", handler.Backend)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.validateBody(t, body)
			forwarder.AssertExpectations(t)
		})
	}
}
