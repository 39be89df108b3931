package fileserv

import (
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/navionguy/koneko/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ClientReadFile(t *testing.T) {
	tests := []struct {
		status   int
		contents string
		err      error
		exp      error
	}{
		{status: http.StatusOK, contents: "10 print 1\n"},
		{status: http.StatusNotFound, exp: fs.ErrNotExist},
		{status: http.StatusForbidden, exp: fs.ErrPermission},
		{err: errors.New("no route to host")},
		{status: http.StatusTeapot},
	}

	for _, tt := range tests {
		cl := &mocks.MockClient{Contents: tt.contents, StatusCode: tt.status, Err: tt.err, Url: "http://localhost:8080/drive/prog%20one"}
		client := NewClient("http://localhost:8080/", cl)

		data, err := client.ReadFile("prog one")
		if tt.status != http.StatusOK {
			require.Error(t, err)
			assert.Contains(t, err.Error(), "prog one: ")
			if tt.exp != nil {
				assert.ErrorIs(t, err, tt.exp)
			}
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.contents, string(data))
		assert.Equal(t, []string{"GET http://localhost:8080/drive/prog%20one"}, cl.Requests)
	}
}

func Test_ClientWriteFile(t *testing.T) {
	cl := &mocks.MockClient{StatusCode: http.StatusNoContent}
	client := NewClient("http://host", cl)

	require.NoError(t, client.WriteFile("prog", []byte("10 end\n")))
	assert.Equal(t, []string{"PUT http://host/drive/prog"}, cl.Requests)
	assert.Equal(t, []string{"10 end\n"}, cl.Sent)

	cl = &mocks.MockClient{StatusCode: http.StatusInternalServerError}
	err := NewClient("http://host", cl).WriteFile("prog", []byte("10 end\n"))
	assert.EqualError(t, err, "prog: server said 500 Internal Server Error")
}

func Test_ClientFiles(t *testing.T) {
	ms := mocks.NewMockServer(http.StatusOK, []byte(`[{"name":"b","isdir":false},{"name":"sub","isdir":true},{"name":"a","isdir":false}]`))
	defer ms.Close()

	files, err := NewClient(ms.ExpURL, nil).Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, files)
	assert.Equal(t, []string{"GET /drive"}, ms.Requests)

	bad := mocks.NewMockServer(http.StatusOK, []byte("<p>not json</p>"))
	defer bad.Close()

	_, err = NewClient(bad.ExpURL, nil).Files()
	assert.Error(t, err)
}

func Test_ClientAgainstServer(t *testing.T) {
	drive := mocks.NewMockStorage()
	srv := &Server{Drive: drive, Log: zerolog.Nop()}
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	client := NewClient(ts.URL, ts.Client())

	require.NoError(t, client.WriteFile("prog", []byte("10 print \"hi\"\n")))
	data, err := client.ReadFile("prog")
	require.NoError(t, err)
	assert.Equal(t, "10 print \"hi\"\n", string(data))

	files, err := client.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"prog"}, files)

	_, err = client.ReadFile("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = client.WriteFile(".env", []byte("x"))
	assert.ErrorIs(t, err, fs.ErrPermission)
}
