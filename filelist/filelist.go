// Package filelist is the JSON form of a drive listing,
// the server builds one and the remote drive client reads it back
package filelist

import (
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
)

// ErrNotList is returned when the body isn't a JSON listing
var ErrNotList = errors.New("not a file list")

// dirEntry holds information about a directory entry
type dirEntry struct {
	Name   string `json:"name"`
	Subdir bool   `json:"isdir"`
}

// FileList holds the array of entries
type FileList struct {
	Files []dirEntry
}

type fileSorter struct {
	list *FileList
}

// NewFileList builds a new list of files in a directory
func NewFileList() *FileList {
	return &FileList{}
}

// FromNames lists plain files
func FromNames(names []string) *FileList {
	fl := NewFileList()
	for _, n := range names {
		fl.AddFile(n, false)
	}
	return fl
}

// JSON returns the file list, an empty list is []
func (fl *FileList) JSON() []byte {
	if len(fl.Files) == 0 {
		return []byte("[]")
	}
	res, _ := json.Marshal(fl.Files)
	return res
}

// AddFile adds one entry to the file list
func (fl *FileList) AddFile(name string, dir bool) {
	fl.Files = append(fl.Files, dirEntry{Name: name, Subdir: dir})
}

// Build reads the json form, replacing my entries, and sorts them
func (fl *FileList) Build(dir io.Reader) error {
	fl.Files = fl.Files[:0]

	jsn, err := io.ReadAll(dir)
	if err != nil {
		return err
	}

	if !json.Valid(jsn) {
		return ErrNotList
	}

	if err := json.Unmarshal(jsn, &fl.Files); err != nil {
		return err
	}
	sort.Sort(&fileSorter{list: fl})

	return nil
}

// Names returns the plain files, skipping sub directories
func (fl *FileList) Names() []string {
	names := []string{}
	for _, f := range fl.Files {
		if !f.Subdir {
			names = append(names, f.Name)
		}
	}
	return names
}

// Len is a part of the sort.Interface
// returns the number file entries
func (fs *fileSorter) Len() int {
	return len(fs.list.Files)
}

// Swap is part of sort.Interface
func (fs *fileSorter) Swap(i, j int) {
	fs.list.Files[i], fs.list.Files[j] = fs.list.Files[j], fs.list.Files[i]
}

// Less puts directories first, then orders by name
func (fs *fileSorter) Less(i, j int) bool {
	a, b := fs.list.Files[i], fs.list.Files[j]
	if a.Subdir != b.Subdir {
		return a.Subdir
	}
	return strings.Compare(a.Name, b.Name) < 0
}
