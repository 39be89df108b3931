package mocks

import (
	"io"
	"net/http"
	"strings"
)

// mocks the parts of http.Client that I use
type MockClient struct {
	Contents   string   // file contents to send back
	Url        string   // Url to validate
	Err        error    // Error to return on call
	StatusCode int      // Status code to return
	Requests   []string // method and url of every request
	Sent       []string // bodies of PUT requests
}

func (mc *MockClient) Do(req *http.Request) (*http.Response, error) {
	mc.Requests = append(mc.Requests, req.Method+" "+req.URL.String())
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		mc.Sent = append(mc.Sent, string(body))
	}

	// am I expected to error?
	if mc.Err != nil {
		return nil, mc.Err
	}

	// Do I need to validate the Url?
	if len(mc.Url) != 0 && mc.Url != req.URL.String() {
		return &http.Response{Status: "404 Not Found", StatusCode: http.StatusNotFound, Body: newReadCloser("")}, nil
	}

	if mc.StatusCode == 0 {
		mc.StatusCode = http.StatusOK
	}
	rsp := http.Response{Status: http.StatusText(mc.StatusCode), StatusCode: mc.StatusCode, Body: newReadCloser(mc.Contents)}
	return &rsp, nil
}

// implement a io.ReadCloser
type readCloser struct {
	rdr *strings.Reader
}

func newReadCloser(s string) *readCloser {
	return &readCloser{rdr: strings.NewReader(s)}
}

// Read implements the basic Read method
func (rc *readCloser) Read(p []byte) (int, error) {
	return rc.rdr.Read(p)
}

// Closer wraps the Close method
func (rc *readCloser) Close() error {
	return nil
}
