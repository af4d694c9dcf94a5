package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// MockAPIResponse scripts the reply for one mocked path.
type MockAPIResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// write sends the scripted response, defaulting the content type to JSON.
func (r MockAPIResponse) write(w http.ResponseWriter) {
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}

	for key, value := range r.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}

	w.WriteHeader(r.StatusCode)
	if r.Body != "" {
		w.Write([]byte(r.Body))
	}
}

// MockAPI is an httptest-backed JSON API with per-path handlers and
// request tracking, for endpoint and pagination tests.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requestCount int
	lastQuery    url.Values
	lastHeader   http.Header
}

// NewMockAPI starts the server. Paths without a handler get a trivial
// JSON reply, so accidental requests fail loudly in assertions rather
// than with connection errors.
func NewMockAPI() *MockAPI {
	m := &MockAPI{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.dispatch))
	return m
}

// dispatch records the request, then routes it to the path's handler.
func (m *MockAPI) dispatch(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestCount++
	m.lastQuery = r.URL.Query()
	m.lastHeader = r.Header.Clone()
	m.mu.Unlock()

	m.mu.RLock()
	handler, ok := m.handlers[r.URL.Path]
	m.mu.RUnlock()

	if !ok {
		handler = func(w http.ResponseWriter, r *http.Request) {
			MockAPIResponse{StatusCode: http.StatusOK, Body: `{"status": "ok"}`}.write(w)
		}
	}
	handler(w, r)
}

// URL returns the server's base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts the server down.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears the request tracking state.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.lastQuery = nil
	m.lastHeader = nil
}

// SetHandler installs a custom handler for a path.
func (m *MockAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse makes a path reply with a fixed scripted response.
func (m *MockAPI) SetResponse(path string, resp MockAPIResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		resp.write(w)
	})
}

// SetPagedItems makes a path serve a paged collection in the shape
//
//	{"total_count": N, "items": [...]}
//
// honoring 1-based "page" and "per_page" query parameters. Requests past
// the end return an empty items array.
func (m *MockAPI) SetPagedItems(path string, items []any) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
		if err != nil || perPage <= 0 {
			perPage = 10
		}
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page <= 0 {
			page = 1
		}

		start := min((page-1)*perPage, len(items))
		end := min(start+perPage, len(items))

		body, err := json.Marshal(map[string]any{
			"total_count": len(items),
			"items":       items[start:end],
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("marshal page: %v", err), http.StatusInternalServerError)
			return
		}

		MockAPIResponse{StatusCode: http.StatusOK, Body: string(body)}.write(w)
	})
}

// GetRequestCount returns how many requests the server has received.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// GetLastQuery returns the query parameters of the most recent request.
func (m *MockAPI) GetLastQuery() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastQuery
}

// GetLastHeader returns the headers of the most recent request.
func (m *MockAPI) GetLastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

// NewJSONResponse builds a 200 OK response with a JSON body.
func NewJSONResponse(data string) MockAPIResponse {
	return MockAPIResponse{
		StatusCode: http.StatusOK,
		Body:       data,
	}
}

// NewErrorResponse builds an error response with a JSON error body.
func NewErrorResponse(status int, message string) MockAPIResponse {
	return MockAPIResponse{
		StatusCode: status,
		Body:       fmt.Sprintf(`{"error": %q}`, message),
	}
}
