// Package localfiles stores program files on the local disk,
// and keeps copies of files fetched from somewhere slower
package localfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// program files can be kept in any of these
var encodings = map[string]encoding.Encoding{
	"":             encoding.Nop,
	"utf-8":        encoding.Nop,
	"utf8":         encoding.Nop,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp437":        charmap.CodePage437,
}

// Encoding finds a text encoding by name
func Encoding(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

// Drive is a directory of program files, it implements object.Storage.
// Sub directories and dot files are never visible.
type Drive struct {
	dir string
	enc encoding.Encoding
}

// NewDrive serves the files in dir, encoded with the named encoding
func NewDrive(dir string, enc string) (*Drive, error) {
	e, err := Encoding(enc)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("drive %s: %w", dir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("drive %s: not a directory", dir)
	}

	return &Drive{dir: dir, enc: e}, nil
}

// Dir is where the files live
func (d *Drive) Dir() string {
	return d.dir
}

// ReadFile returns the file contents as utf-8
func (d *Drive) ReadFile(name string) ([]byte, error) {
	path, err := d.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return d.enc.NewDecoder().Bytes(data)
}

// WriteFile encodes data and replaces the file
func (d *Drive) WriteFile(name string, data []byte) error {
	path, err := d.path(name)
	if err != nil {
		return err
	}

	enc, err := d.enc.NewEncoder().Bytes(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return os.WriteFile(path, enc, 0644)
}

// Files lists the visible files, sorted by name
func (d *Drive) Files() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || IsDotFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (d *Drive) path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%s: %w", name, os.ErrPermission)
	}
	return filepath.Join(d.dir, name), nil
}

// IsDotFile reports whether any element of a slash separated name starts with a period
func IsDotFile(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// ValidName is true for a plain file name that can't escape the drive
func ValidName(name string) bool {
	if len(name) == 0 || IsDotFile(name) {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
