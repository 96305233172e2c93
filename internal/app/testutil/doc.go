// Package testutil provides test doubles shared by the capture, relay and API tests.
//
// Device side (mock_device.go):
//   - MockDevice, MockStream and MockTrack stand in for the microphone; tracks
//     count their Stop calls so tests can assert they were released once.
//
// Network side (mock_uploader.go, mock_forwarder.go):
//   - MockUploader replaces the relay client behind capture.Controller
//   - MockForwarder replaces the backend behind the upload handler
//
// Fixtures (fixtures.go):
//   - Canonical mock backend replies and sample media blobs
package testutil
