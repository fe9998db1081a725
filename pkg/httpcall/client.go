// Package httpcall is the HTTP request helper imported by generated
// test files. It carries pass-through configuration only (base URL,
// headers, TLS verification, timeout): request semantics live in the
// generated code and the spec, not here.
package httpcall

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single test request.
const DefaultTimeout = 10 * time.Second

// maxAttempts bounds automatic retries of a request on transport
// errors. HTTP error statuses are never retried; they are results the
// generated assertions judge.
const maxAttempts = 3

// retryDelay is the pause between attempts. Variable so tests can
// shorten it.
var retryDelay = 2 * time.Second

// Request describes one HTTP call issued by a generated test.
type Request struct {
	// BaseURL is the suite base URL
	BaseURL string
	// Method is the HTTP method, upper-case
	Method string
	// Path is appended to BaseURL
	Path string
	// Body is the JSON request body; nil sends no body
	Body interface{}
	// Params are URL query parameters
	Params map[string]string
	// Headers are added to the request
	Headers map[string]string
	// SSLVerify enables TLS certificate verification
	SSLVerify bool
	// Timeout overrides DefaultTimeout when positive
	Timeout time.Duration
}

// Response captures what generated assertions need from an HTTP
// response.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// Body is the raw response body
	Body []byte
}

// JSON decodes the response body, with numbers kept as json.Number so
// they compare exactly against embedded expected values.
func (r *Response) JSON() (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}
	return v, nil
}

// Do executes the request and reads the full response body.
func Do(req Request) (*Response, error) {
	endpoint := strings.TrimRight(req.BaseURL, "/") + req.Path

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %s: %w", endpoint, err)
	}
	if len(req.Params) > 0 {
		q := u.Query()
		for k, v := range req.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var payload []byte
	if req.Body != nil {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: !req.SSLVerify},
		},
	}

	// The request is rebuilt per attempt because the body reader is
	// consumed on send.
	var httpResp *http.Response
	for attempt := 1; ; attempt++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		httpReq, err := http.NewRequest(req.Method, u.String(), body)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		for k, v := range req.Headers {
			httpReq.Header.Set(k, v)
		}

		httpResp, err = client.Do(httpReq)
		if err == nil {
			break
		}
		if attempt == maxAttempts {
			return nil, fmt.Errorf("request %s %s failed after %d attempts: %w", req.Method, u.String(), attempt, err)
		}
		time.Sleep(retryDelay)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{StatusCode: httpResp.StatusCode, Body: data}, nil
}
