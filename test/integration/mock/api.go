package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is one call received by an ApiMock.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Queries map[string]string
}

// ApiMock is a stand-in for an upstream HTTP service.
// Each method+path answers with its configured status and JSON body.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]response
	requests  []Request
}

type response struct {
	status int
	body   any
}

func NewApiServer() *ApiMock {
	return &ApiMock{responses: map[string]response{}}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
		a.server = nil
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	req := Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: map[string]string{},
		Queries: map[string]string{},
	}
	for key, value := range r.Header {
		req.Headers[key] = value[0]
	}
	for key, value := range r.URL.Query() {
		req.Queries[key] = value[0]
	}

	a.mu.Lock()
	a.requests = append(a.requests, req)
	resp, ok := a.responses[r.Method+r.URL.Path]
	a.mu.Unlock()

	if !ok {
		resp = response{status: http.StatusNotFound, body: map[string]any{"error": "not mocked"}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetResponse makes method+path answer with status and body.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = response{status: status, body: body}
}

// Requests returns every call received for method+path, oldest first.
func (a *ApiMock) Requests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []Request
	for _, r := range a.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets all responses and received calls.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]response{}
	a.requests = nil
}
