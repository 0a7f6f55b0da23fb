package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://core.erfjab.com/"
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 64 << 20
)

var errFormAndJSON = errors.New("form and json bodies are mutually exclusive")

// Core issues exactly one HTTP round trip per call. The zero value targets
// DefaultBaseURL with http.DefaultClient and DefaultTimeout.
type Core struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout applies to requests that do not set their own.
	Timeout time.Duration
}

type Request struct {
	Method   string
	Endpoint string
	Headers  http.Header
	Query    url.Values
	Form     Form
	JSON     any
	// Timeout bounds the whole round trip. Non-positive falls back to
	// Core.Timeout, then DefaultTimeout.
	Timeout time.Duration
}

type response struct {
	method     string
	url        string
	sentBody   string
	statusCode int
	body       []byte
}

// Execute performs the request and returns the decoded JSON body unchanged.
// An empty success body decodes to nil.
func (c Core) Execute(ctx context.Context, req Request) (any, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil, nil
	}

	value, err := parseJSON(resp.body, false)
	if err != nil {
		return nil, resp.decodeError(err)
	}
	return value, nil
}

func (c Core) Get(ctx context.Context, req Request) (any, error) {
	req.Method = http.MethodGet
	return c.Execute(ctx, req)
}

func (c Core) Post(ctx context.Context, req Request) (any, error) {
	req.Method = http.MethodPost
	return c.Execute(ctx, req)
}

func (c Core) Put(ctx context.Context, req Request) (any, error) {
	req.Method = http.MethodPut
	return c.Execute(ctx, req)
}

func (c Core) Delete(ctx context.Context, req Request) (any, error) {
	req.Method = http.MethodDelete
	return c.Execute(ctx, req)
}

// Fetch performs the request and decodes the body into a single T.
func Fetch[T any](ctx context.Context, c Core, req Request) (T, error) {
	var zero T

	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return zero, err
	}

	value, err := parseJSON(resp.body, true)
	if err != nil {
		return zero, resp.decodeError(err)
	}

	var out T
	if err := Decode(value, &out); err != nil {
		return zero, resp.decodeError(err)
	}
	return out, nil
}

// FetchList performs the request and decodes a JSON array element by element,
// preserving order.
func FetchList[T any](ctx context.Context, c Core, req Request) ([]T, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}

	value, err := parseJSON(resp.body, true)
	if err != nil {
		return nil, resp.decodeError(err)
	}

	items, ok := value.([]any)
	if !ok {
		return nil, resp.decodeError(fmt.Errorf("expected JSON array, got %s", jsonKind(value)))
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var decoded T
		if err := Decode(item, &decoded); err != nil {
			return nil, resp.decodeError(fmt.Errorf("item %d: %w", i, err))
		}
		out = append(out, decoded)
	}
	return out, nil
}

func (c Core) roundTrip(ctx context.Context, req Request) (response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	endpoint, err := c.buildURL(req.Endpoint, req.Query)
	if err != nil {
		return response{}, err
	}

	payload, contentType, sentBody, err := encodeBody(req)
	if err != nil {
		return response{}, err
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout(req))
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, method, endpoint, payload)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp := response{method: method, url: endpoint, sentBody: sentBody}

	httpResp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return resp, resp.transportError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	resp.statusCode = httpResp.StatusCode
	resp.body, err = io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return resp, resp.transportError(err)
	}

	if resp.statusCode >= http.StatusBadRequest {
		return resp, resp.statusError()
	}
	return resp, nil
}

func (c Core) timeout(req Request) time.Duration {
	switch {
	case req.Timeout > 0:
		return req.Timeout
	case c.Timeout > 0:
		return c.Timeout
	default:
		return DefaultTimeout
	}
}

func (c Core) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Core) buildURL(endpoint string, query url.Values) (string, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("base url host is required")
	}

	full := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full, nil
}

func encodeBody(req Request) (io.Reader, string, string, error) {
	hasForm := len(req.Form) > 0
	hasJSON := req.JSON != nil

	switch {
	case hasForm && hasJSON:
		return nil, "", "", errFormAndJSON
	case hasJSON:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), contentTypeJSON, string(data), nil
	case hasForm:
		encoded := req.Form.Encode()
		return strings.NewReader(encoded), contentTypeForm, encoded, nil
	default:
		return nil, "", "", nil
	}
}

func (r response) transportError(err error) error {
	kind := ErrConnection
	if isTimeout(err) {
		kind = ErrTimeout
	}
	// url.Error repeats the method and URL already carried by RequestError.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &RequestError{Kind: kind, Method: r.method, URL: r.url, Body: r.sentBody, Err: err}
}

func (r response) statusError() error {
	kind := ErrResponse
	if r.statusCode == http.StatusUnauthorized {
		kind = ErrAuthentication
	}
	return &RequestError{
		Kind:       kind,
		Method:     r.method,
		URL:        r.url,
		StatusCode: r.statusCode,
		Detail:     errorDetail(r.body),
		Body:       r.sentBody,
	}
}

func (r response) decodeError(err error) error {
	return &RequestError{Kind: ErrDecode, Method: r.method, URL: r.url, StatusCode: r.statusCode, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// errorDetail prefers the "detail" field of a JSON error body and falls back
// to the raw text.
func errorDetail(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		if raw, ok := payload["detail"]; ok {
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				return text
			}
			var compact bytes.Buffer
			if err := json.Compact(&compact, raw); err == nil {
				return compact.String()
			}
		}
	}
	return strings.TrimSpace(string(body))
}
