package inspector

import (
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Cache caches the workdir's top-level entries for the resolver, which
// probes them on every turn. A filesystem watcher invalidates the cache
// on change; without a watcher every access falls back to a direct read.
type Cache struct {
	workdir string
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu      sync.Mutex
	entries []string
	dirs    []string
	valid   bool
}

// NewCache returns a Cache rooted at workdir and starts watching it.
func NewCache(workdir string) *Cache {
	c := &Cache{workdir: workdir, done: make(chan struct{})}

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if addErr := watcher.Add(workdir); addErr != nil {
			watcher.Close()
			err = addErr
		} else {
			c.watcher = watcher
			go c.watch()
		}
	}
	if c.watcher == nil {
		log.Printf("WARNING: cannot watch workdir, entry cache disabled: %v", err)
	}
	return c
}

// Close stops the watcher. The cache remains usable in fallback mode.
func (c *Cache) Close() {
	close(c.done)
	if c.watcher != nil {
		c.watcher.Close()
	}
}

func (c *Cache) watch() {
	for {
		select {
		case <-c.done:
			return
		case _, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			c.invalidate()
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.invalidate()
		}
	}
}

func (c *Cache) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// refreshLocked re-reads the workdir when the cache is stale. Callers
// hold c.mu. A read error empties the cache rather than failing: the
// resolver treats an empty listing as "cannot verify".
func (c *Cache) refreshLocked() {
	if c.valid && c.watcher != nil {
		return
	}
	c.entries = nil
	c.dirs = nil

	dirents, err := os.ReadDir(c.workdir)
	if err != nil {
		c.valid = c.watcher != nil
		return
	}
	for _, d := range dirents {
		if d.IsDir() {
			c.dirs = append(c.dirs, d.Name())
			c.entries = append(c.entries, d.Name())
		} else if d.Type().IsRegular() {
			c.entries = append(c.entries, d.Name())
		}
	}
	c.valid = true
}

// Entries returns the names of files and directories at the root.
func (c *Cache) Entries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
	return append([]string(nil), c.entries...)
}

// Directories returns the names of directories at the root.
func (c *Cache) Directories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
	return append([]string(nil), c.dirs...)
}

// Exists reports whether name is a top-level entry of the workdir.
func (c *Cache) Exists(name string) bool {
	if name == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
	for _, e := range c.entries {
		if e == name {
			return true
		}
	}
	return false
}
