package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// RecordedRequest is one request received by a FakeStore.
type RecordedRequest struct {
	// Route is the route query parameter without the "api/" prefix.
	Route  string
	Query  url.Values
	Form   url.Values
	Cookie string
}

// FakeResponse is what a FakeStore answers for a route. Body is written as
// is when it is a string and JSON encoded otherwise.
type FakeResponse struct {
	Status     int
	Body       interface{}
	SetCookies []string
}

// FakeStore is an httptest server speaking the OpenCart API wire format.
// Unknown routes answer {}.
type FakeStore struct {
	server    *httptest.Server
	mutex     sync.Mutex
	responses map[string]FakeResponse
	requests  []RecordedRequest
}

// NewFakeStore starts a FakeStore. Callers must Close it.
func NewFakeStore() *FakeStore {
	store := &FakeStore{responses: make(map[string]FakeResponse)}
	store.server = httptest.NewServer(http.HandlerFunc(store.serve))

	return store
}

// URL returns the normalized base URL of the store.
func (s *FakeStore) URL() string {
	return s.server.URL + constants.EntryScript
}

// Close shuts the server down.
func (s *FakeStore) Close() {
	s.server.Close()
}

// Respond sets the response for route ("login", "cart/add").
func (s *FakeStore) Respond(route string, response FakeResponse) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.responses[route] = response
}

// Requests returns every request received so far.
func (s *FakeStore) Requests() []RecordedRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// Last returns the most recent request, or an empty one.
func (s *FakeStore) Last() RecordedRequest {
	requests := s.Requests()
	if len(requests) == 0 {
		return RecordedRequest{}
	}

	return requests[len(requests)-1]
}

func (s *FakeStore) serve(writer http.ResponseWriter, request *http.Request) {
	_ = request.ParseForm()

	route := strings.TrimPrefix(request.URL.Query().Get("route"), constants.RoutePrefix)

	s.mutex.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Route:  route,
		Query:  request.URL.Query(),
		Form:   request.PostForm,
		Cookie: request.Header.Get("Cookie"),
	})
	response, ok := s.responses[route]
	s.mutex.Unlock()

	if !ok {
		response = FakeResponse{Body: map[string]interface{}{}}
	}

	for _, cookie := range response.SetCookies {
		writer.Header().Add("Set-Cookie", cookie)
	}

	writer.Header().Set("Content-Type", "application/json")

	if response.Status != 0 {
		writer.WriteHeader(response.Status)
	}

	switch body := response.Body.(type) {
	case nil:
	case string:
		_, _ = writer.Write([]byte(body))
	default:
		_ = json.NewEncoder(writer).Encode(body)
	}
}

// NewTestClient creates a client for baseURL resuming the given session.
func NewTestClient(baseURL string, version opencart.APIVersion, token string) *Client {
	client, err := New(&opencart.Config{
		BaseURL:    baseURL,
		APIVersion: version,
		Token:      token,
	})
	if err != nil {
		panic(err)
	}

	return client
}
