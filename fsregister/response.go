package fsregister

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Response wraps a single raw API response and exposes accessors for the
// four fields of the fixed envelope every FS Register endpoint returns:
// Status, Message, ResultInfo and Data.
//
// The body is read once when the response is wrapped (Go response bodies
// are single-read); each accessor decodes the buffered body on every
// call, so an invalid JSON body surfaces as an error from whichever
// accessor is used.
type Response struct {
	// StatusCode is the HTTP status code of the underlying response
	StatusCode int
	reason     string
	body       []byte
}

// WrapResponse buffers the body of raw and returns the envelope wrapper.
// The underlying body is closed; raw itself is not mutated.
func WrapResponse(raw *http.Response) (*Response, error) {
	defer raw.Body.Close()

	body, err := io.ReadAll(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: raw.StatusCode,
		reason:     http.StatusText(raw.StatusCode),
		body:       body,
	}, nil
}

// OK reports whether the underlying response has a 2xx status code.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Reason returns the HTTP reason phrase for the response status.
func (r *Response) Reason() string {
	return r.reason
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	return r.body
}

func (r *Response) decode() (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(r.body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}
	return &env, nil
}

// Status returns the envelope's Status field, an FS Register API status
// code such as "FSR-API-02-01-00". The value is opaque to the client.
func (r *Response) Status() (string, error) {
	env, err := r.decode()
	if err != nil {
		return "", err
	}
	return env.Status, nil
}

// Message returns the envelope's Message field.
func (r *Response) Message() (string, error) {
	env, err := r.decode()
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ResultInfo returns the envelope's pagination metadata, passed through
// exactly as the server sent it.
func (r *Response) ResultInfo() (map[string]any, error) {
	env, err := r.decode()
	if err != nil {
		return nil, err
	}
	return env.ResultInfo, nil
}

// Data returns the envelope's payload: nil, a single-element slice or a
// multi-element slice of records. The API does not distinguish "one
// record" from "a list containing one record"; callers decide by length.
func (r *Response) Data() ([]Record, error) {
	env, err := r.decode()
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
