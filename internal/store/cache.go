// Package store keeps parsed tests in memory, keyed by test id, with
// modification-time based invalidation against the PDF files they came
// from. Nothing is persisted: a restart rebuilds the cache from the
// directory sweep.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pdfquiz/internal/models"
)

// ParseFunc turns a PDF path into a Test. Injected so tests can exercise
// the cache without real PDF input.
type ParseFunc func(path string) (*models.Test, error)

type cacheEntry struct {
	modTime time.Time
	test    *models.Test
}

// Cache maps source paths to parsed tests. A file is re-parsed only when
// its modification time changes; files that disappear are evicted on the
// next sweep. Files that fail to parse are logged and skipped, never
// fatal.
type Cache struct {
	mu      sync.RWMutex
	dir     string
	parse   ParseFunc
	logger  *zap.Logger
	entries map[string]cacheEntry

	// uploads holds tests registered directly, without a backing file.
	// They survive sweeps but not restarts.
	uploads map[string]*models.Test
}

func New(dir string, parse ParseFunc, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		dir:     dir,
		parse:   parse,
		logger:  logger,
		entries: make(map[string]cacheEntry),
		uploads: make(map[string]*models.Test),
	}
}

// Reload sweeps the test directory: new or modified PDFs are re-parsed,
// entries whose files vanished are evicted, unchanged files are kept as
// is. Returns the number of files parsed during this sweep.
func (c *Cache) Reload() (int, error) {
	pattern := filepath.Join(c.dir, "*.pdf")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("sweeping %s: %w", pattern, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	present := make(map[string]bool, len(paths))
	parsed := 0

	for _, path := range paths {
		present[path] = true

		info, err := os.Stat(path)
		if err != nil {
			c.logger.Warn("stat failed, skipping file",
				zap.String("path", path), zap.Error(err))
			continue
		}

		if entry, ok := c.entries[path]; ok && entry.modTime.Equal(info.ModTime()) {
			continue
		}

		test, err := c.parse(path)
		if err != nil {
			c.logger.Warn("parse failed, excluding file",
				zap.String("path", path), zap.Error(err))
			delete(c.entries, path)
			continue
		}

		c.entries[path] = cacheEntry{modTime: info.ModTime(), test: test}
		parsed++
		c.logger.Info("cached test",
			zap.String("id", test.ID),
			zap.String("path", path),
			zap.Int("questions", test.Total))
	}

	for path := range c.entries {
		if !present[path] {
			c.logger.Info("evicting vanished file", zap.String("path", path))
			delete(c.entries, path)
		}
	}

	return parsed, nil
}

// Tests returns every cached test sorted by name, file-backed and
// uploaded alike.
func (c *Cache) Tests() []*models.Test {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*models.Test, 0, len(c.entries)+len(c.uploads))
	for _, entry := range c.entries {
		out = append(out, entry.test)
	}
	for _, test := range c.uploads {
		out = append(out, test)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get looks a test up by id. Uploaded tests shadow file-backed ones with
// the same id.
func (c *Cache) Get(id string) (*models.Test, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if test, ok := c.uploads[id]; ok {
		return test, true
	}
	for _, entry := range c.entries {
		if entry.test.ID == id {
			return entry.test, true
		}
	}
	return nil, false
}

// Register adds a test with no backing file, typically from an upload.
// Re-registering the same id replaces the previous test.
func (c *Cache) Register(test *models.Test) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads[test.ID] = test
}

// Len reports how many tests the cache currently holds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries) + len(c.uploads)
}
