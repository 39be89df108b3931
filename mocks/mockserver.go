package mocks

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// MockServ answers every request with the same status and body
type MockServ struct {
	server     *httptest.Server
	statuscode int
	body       []byte
	ExpURL     string
	Requests   []string // method and path of each request
	Bodies     []string // request bodies
}

// NewMockServer returns a pointer to a ready to use mock http server
// caller should call close when finished, to shut it down
func NewMockServer(statuscode int, body []byte) *MockServ {
	ms := &MockServ{statuscode: statuscode, body: body}

	ms.server = httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		ms.Bodies = append(ms.Bodies, string(data))
		ms.Requests = append(ms.Requests, req.Method+" "+req.URL.Path)

		res.WriteHeader(ms.statuscode)
		res.Write(ms.body)
	}))
	ms.ExpURL = ms.server.URL

	return ms
}

// Close the mock server
func (ms *MockServ) Close() {
	ms.server.Close()
}
