package relay

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "transcripto/internal/app/errors"
)

// ProcessTimeHeader carries the backend's optional processing-time metric.
const ProcessTimeHeader = "X-Process-Time-Ms"

// Outcome is the classified result of one backend call. The set of variants
// is closed: UpstreamJSONError, UpstreamTextError, UpstreamJSON, UpstreamText
// and TransportFailure.
type Outcome interface {
	// Label names the variant for logs and metrics.
	Label() string
	outcome()
}

// Timing is embedded by variants that came back from the backend.
type Timing struct {
	ProcessTime string
}

// UpstreamJSONError is a non-success status with a JSON body.
type UpstreamJSONError struct {
	Timing
	Status int
	Body   json.RawMessage
}

// UpstreamTextError is a non-success status with a non-JSON body.
type UpstreamTextError struct {
	Timing
	Status int
	Text   string
}

// UpstreamJSON is a success status with a JSON body.
type UpstreamJSON struct {
	Timing
	Body json.RawMessage
}

// UpstreamText is a success status with a non-JSON body.
type UpstreamText struct {
	Timing
	Text string
}

// TransportFailure means the backend could not be reached or read.
type TransportFailure struct {
	Err error
}

func (UpstreamJSONError) Label() string { return "upstream_json_error" }
func (UpstreamTextError) Label() string { return "upstream_text_error" }
func (UpstreamJSON) Label() string      { return "upstream_json" }
func (UpstreamText) Label() string      { return "upstream_text" }
func (TransportFailure) Label() string  { return "transport_failure" }

func (UpstreamJSONError) outcome() {}
func (UpstreamTextError) outcome() {}
func (UpstreamJSON) outcome()      {}
func (UpstreamText) outcome()      {}
func (TransportFailure) outcome()  {}

// Response is the normalized reply sent to the client.
type Response struct {
	Status      int
	Body        []byte
	ProcessTime string
}

// UploadResult is the normalized success payload.
type UploadResult struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
}

// ErrorBody is the normalized failure payload.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Classify maps a backend reply onto an Outcome. A body declared as JSON
// that does not parse is treated as text.
func Classify(status int, contentType string, body []byte, processTime string) Outcome {
	timing := Timing{ProcessTime: processTime}
	isJSON := strings.Contains(strings.ToLower(contentType), "application/json") && json.Valid(body)
	ok := status >= 200 && status < 300

	switch {
	case !ok && isJSON:
		return UpstreamJSONError{Timing: timing, Status: status, Body: body}
	case !ok:
		return UpstreamTextError{Timing: timing, Status: status, Text: string(body)}
	case isJSON:
		return UpstreamJSON{Timing: timing, Body: body}
	default:
		return UpstreamText{Timing: timing, Text: string(body)}
	}
}

// Normalize turns an Outcome into the single JSON contract the client consumes.
func Normalize(o Outcome) Response {
	switch v := o.(type) {
	case UpstreamJSONError:
		return Response{Status: v.Status, Body: v.Body, ProcessTime: v.ProcessTime}
	case UpstreamTextError:
		detail := v.Text
		if detail == "" {
			detail = "Upstream error"
		}
		return Response{Status: v.Status, Body: mustJSON(ErrorBody{Detail: detail}), ProcessTime: v.ProcessTime}
	case UpstreamJSON:
		return Response{Status: http.StatusOK, Body: v.Body, ProcessTime: v.ProcessTime}
	case UpstreamText:
		return Response{Status: http.StatusOK, Body: mustJSON(UploadResult{Transcript: v.Text}), ProcessTime: v.ProcessTime}
	case TransportFailure:
		detail := apperrors.DetailOf(v.Err, "Proxy failed")
		return Response{Status: http.StatusBadGateway, Body: mustJSON(ErrorBody{Detail: detail})}
	default:
		return Response{Status: http.StatusBadGateway, Body: mustJSON(ErrorBody{Detail: "Proxy failed"})}
	}
}

func mustJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
