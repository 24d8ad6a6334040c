package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/subbridge/subbridge/internal/httpclient"
)

// MockHTTPClient implements httpclient.Client, answering from registered routes and
// recording every request it receives
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []httpclient.Request
	// Err, when set, is returned by every Send as a transport failure
	Err error
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for requests whose URL ends with url
func (m *MockHTTPClient) RegisterResponse(url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = resp
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, *req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for route, resp := range m.routes {
		if strings.HasSuffix(req.URL, route) {
			if resp.StatusCode >= 300 {
				return nil, httpclient.NewError(resp.StatusCode, resp.Body)
			}
			return &httpclient.Response{
				StatusCode: resp.StatusCode,
				Body:       resp.Body,
				Headers:    resp.Headers,
			}, nil
		}
	}

	return nil, httpclient.NewError(http.StatusNotFound, []byte("Not Found"))
}

// Requests returns a copy of the requests sent so far
func (m *MockHTTPClient) Requests() []httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]httpclient.Request(nil), m.requests...)
}
