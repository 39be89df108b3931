package localfiles

import (
	"bytes"
	"io"
	"sort"
	"sync"

	"github.com/navionguy/koneko/object"
)

// an instance of a local file
type aLocalFile struct {
	name  string
	dirty bool // written here but not yet by the source
	data  []byte
}

// Cache holds every file read through it so later loads
// don't go back to the source.  Writes go straight through,
// a failed write is still kept locally and retried by Flush.
type Cache struct {
	mu  sync.Mutex
	src object.Storage
	dir map[string]*aLocalFile
}

// NewCache fronts src
func NewCache(src object.Storage) *Cache {
	return &Cache{src: src, dir: make(map[string]*aLocalFile)}
}

// ReadFile returns the local copy, fetching it the first time
func (c *Cache) ReadFile(name string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if alf, ok := c.dir[name]; ok {
		return bytes.Clone(alf.data), nil
	}

	data, err := c.src.ReadFile(name)
	if err != nil {
		return nil, err
	}

	alf, err := c.storeFile(name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return bytes.Clone(alf.data), nil
}

// WriteFile keeps the data and sends it on
func (c *Cache) WriteFile(name string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	alf := &aLocalFile{name: name, data: bytes.Clone(data), dirty: true}
	c.dir[name] = alf

	if err := c.src.WriteFile(name, data); err != nil {
		return err
	}
	alf.dirty = false
	return nil
}

// Files merges what the source has with anything only held here
func (c *Cache) Files() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names, err := c.src.Files()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for n, alf := range c.dir {
		if alf.dirty && !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Flush retries every write the source refused, the first failure stops it
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, alf := range c.dirtyFiles() {
		if err := c.src.WriteFile(alf.name, alf.data); err != nil {
			return err
		}
		alf.dirty = false
	}
	return nil
}

// Forget drops the local copy of name
func (c *Cache) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.dir, name)
}

// dirty files in name order
func (c *Cache) dirtyFiles() []*aLocalFile {
	var list []*aLocalFile
	for _, alf := range c.dir {
		if alf.dirty {
			list = append(list, alf)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })
	return list
}

// storeFile reads the contents of file into the cache
func (c *Cache) storeFile(name string, file io.Reader) (*aLocalFile, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	alf := &aLocalFile{name: name, data: data}
	c.dir[name] = alf
	return alf, nil
}
