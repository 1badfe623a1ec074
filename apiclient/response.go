package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Response is the remote response body annotated with its status
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	Binary bool // Requested with ExpectBinary, Body is not structured text
}

// Decode unmarshals a JSON body into v
func (r *Response) Decode(v any) error {
	if r.Binary {
		return errors.New("binary response can't be decoded as JSON")
	}
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ContentType returns the response Content-Type header
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}
