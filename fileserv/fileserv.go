// Package fileserv puts a session on the network: the program drive,
// the screen and the key buffer each get routes
package fileserv

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/navionguy/koneko/filelist"
	"github.com/navionguy/koneko/localfiles"
	"github.com/navionguy/koneko/object"
	"github.com/rs/zerolog"
)

// route names
const (
	DriveRt  = "drive"
	FileRt   = "file"
	ScreenRt = "screen"
	KeyRt    = "key"
	KeysRt   = "keys"
)

// biggest program file accepted
const maxUpload = 1 << 20

// Screen is what the screen route can show
type Screen interface {
	WritePNG(w io.Writer) error
}

// Keys accepts key presses from the browser
type Keys interface {
	SaveKeyStroke(key string) bool
	SaveBytes(bts []byte) int
}

// Server answers the http requests, any part left nil gets no routes
type Server struct {
	Drive  object.Storage
	Screen Screen
	Keys   Keys
	Log    zerolog.Logger
}

// Router builds the mux routes to all my resources
func (srv *Server) Router() *mux.Router {
	rtr := mux.NewRouter()
	rtr.Use(srv.logRequests)

	if srv.Drive != nil {
		rtr.HandleFunc("/drive", srv.listDrive).Methods(http.MethodGet).Name(DriveRt)
		rtr.HandleFunc("/drive/", srv.listDrive).Methods(http.MethodGet)
		rtr.HandleFunc("/drive/{file}", srv.getFile).Methods(http.MethodGet).Name(FileRt)
		rtr.HandleFunc("/drive/{file}", srv.putFile).Methods(http.MethodPut)
	}

	if srv.Screen != nil {
		rtr.HandleFunc("/screen.png", srv.sendScreen).Methods(http.MethodGet).Name(ScreenRt)
	}

	if srv.Keys != nil {
		rtr.HandleFunc("/keys/{key}", srv.pressKey).Methods(http.MethodPost).Name(KeyRt)
		rtr.HandleFunc("/keys", srv.typeKeys).Methods(http.MethodPost).Name(KeysRt)
	}

	return rtr
}

// listDrive sends the file names as JSON
func (srv *Server) listDrive(w http.ResponseWriter, r *http.Request) {
	names, err := srv.Drive.Files()
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(filelist.FromNames(names).JSON())
}

func (srv *Server) getFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if localfiles.IsDotFile(file) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	data, err := srv.Drive.ReadFile(file)
	if err != nil {
		srv.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(data)
}

func (srv *Server) putFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if localfiles.IsDotFile(file) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpload))
	if err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}

	if err := srv.Drive.WriteFile(file, data); err != nil {
		srv.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) sendScreen(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := srv.Screen.WritePNG(w); err != nil {
		srv.Log.Error().Err(err).Msg("screen encode failed")
	}
}

// pressKey queues one named key
func (srv *Server) pressKey(w http.ResponseWriter, r *http.Request) {
	if !srv.Keys.SaveKeyStroke(mux.Vars(r)["key"]) {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// typeKeys queues the raw bytes of the body
func (srv *Server) typeKeys(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpload))
	if err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}

	if srv.Keys.SaveBytes(data) < len(data) {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps a storage error onto a status code
func (srv *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, fs.ErrPermission):
		w.WriteHeader(http.StatusForbidden)
	default:
		srv.Log.Warn().Err(err).Str("path", r.URL.Path).Msg("drive request failed")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// statusRecorder remembers the status code for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		srv.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
