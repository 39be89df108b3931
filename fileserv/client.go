package fileserv

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/navionguy/koneko/filelist"
)

// HTTPClient is the part of http.Client I use
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a drive on another koneko server, it implements object.Storage
type Client struct {
	base string
	http HTTPClient
}

// NewClient talks to the server at base, a nil hc gets a client with a timeout
func NewClient(base string, hc HTTPClient) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

func (c *Client) fileURL(name string) string {
	return c.base + "/drive/" + url.PathEscape(name)
}

// ReadFile fetches the program text
func (c *Client) ReadFile(name string) ([]byte, error) {
	body, err := c.send(http.MethodGet, c.fileURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return body, nil
}

// WriteFile stores the program text on the server
func (c *Client) WriteFile(name string, data []byte) error {
	if _, err := c.send(http.MethodPut, c.fileURL(name), data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Files asks for the drive listing
func (c *Client) Files() ([]string, error) {
	body, err := c.send(http.MethodGet, c.base+"/drive", nil)
	if err != nil {
		return nil, err
	}

	fl := filelist.NewFileList()
	if err := fl.Build(bytes.NewReader(body)); err != nil {
		return nil, err
	}
	return fl.Names(), nil
}

func (c *Client) send(method, target string, data []byte) ([]byte, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return nil, err
	}

	rsp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	switch {
	case rsp.StatusCode == http.StatusNotFound:
		return nil, fs.ErrNotExist
	case rsp.StatusCode == http.StatusForbidden:
		return nil, fs.ErrPermission
	case rsp.StatusCode < 200 || rsp.StatusCode > 299:
		return nil, fmt.Errorf("server said %d %s", rsp.StatusCode, http.StatusText(rsp.StatusCode))
	}

	return io.ReadAll(rsp.Body)
}
