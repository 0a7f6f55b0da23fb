package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrResponse       = errors.New("invalid response")
	ErrConnection     = errors.New("connection error occurred")
	ErrTimeout        = errors.New("request timed out")
	// ErrDecode reports a success response whose body does not match the declared shape.
	ErrDecode = errors.New("decode response")
)

// RequestError carries the details of a failed call. Kind is one of the
// sentinel errors above and is matched by errors.Is.
type RequestError struct {
	Kind       error
	Method     string
	URL        string
	StatusCode int
	Detail     string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	fmt.Fprintf(&b, " (url: %s", e.URL)
	if e.Body != "" {
		fmt.Fprintf(&b, ", body: %s", e.Body)
	}
	b.WriteString(")")
	return b.String()
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StatusCode returns the HTTP status carried by err, or 0 when no status was received.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
