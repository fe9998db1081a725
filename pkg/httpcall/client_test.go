package httpcall

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortRetryDelay(t *testing.T) {
	t.Helper()
	original := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = original })
}

func TestDoSendsMethodPathParamsHeaders(t *testing.T) {
	var got *http.Request
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	resp, err := Do(Request{
		BaseURL: server.URL + "/",
		Method:  "POST",
		Path:    "/users",
		Body:    map[string]interface{}{"name": "ada"},
		Params:  map[string]string{"page": "2"},
		Headers: map[string]string{"X-Test-Header": "value"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "/users", got.URL.Path)
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.Equal(t, "value", got.Header.Get("X-Test-Header"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"name": "ada"}`, string(gotBody))
}

func TestDoWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	resp, err := Do(Request{BaseURL: server.URL, Method: "GET", Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResponseJSONUsesNumbers(t *testing.T) {
	resp := &Response{Body: []byte(`{"n": 2, "nested": {"x": 1.5}}`)}

	v, err := resp.JSON()
	require.NoError(t, err)

	obj, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, json.Number("2"), obj["n"])
}

func TestResponseJSONInvalid(t *testing.T) {
	resp := &Response{Body: []byte("not json")}
	_, err := resp.JSON()
	assert.Error(t, err)
}

func TestDoConnectionError(t *testing.T) {
	shortRetryDelay(t)

	_, err := Do(Request{BaseURL: "http://127.0.0.1:1", Method: "GET", Path: "/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestDoRetriesTransportErrors(t *testing.T) {
	shortRetryDelay(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			// Abort the connection so the client sees a transport
			// error rather than an HTTP status
			panic(http.ErrAbortHandler)
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	resp, err := Do(Request{
		BaseURL: server.URL,
		Method:  "POST",
		Path:    "/",
		Body:    map[string]interface{}{"name": "ada"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoDoesNotRetryErrorStatuses(t *testing.T) {
	shortRetryDelay(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := Do(Request{BaseURL: server.URL, Method: "GET", Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
