package endpoint

import "fmt"

// errBodyLimit caps how much of a response body ends up in error strings.
const errBodyLimit = 256

// ResponseError is returned when the API answers with a status other
// than 200. Body holds the full response body.
type ResponseError struct {
	URL    string
	Status int
	Body   string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("API error (status %d) from %s: %s",
		e.Status, e.URL, snippet(e.Body))
}

// DecodeError is returned when a 200 response body cannot be decoded
// into the requested type. Body holds the full response body.
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode API response from %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func snippet(s string) string {
	if len(s) <= errBodyLimit {
		return s
	}
	return s[:errBodyLimit] + "..."
}
