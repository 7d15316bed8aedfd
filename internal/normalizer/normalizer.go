// Package normalizer computes a canonical fuzzy-grouping key for
// filenames.
package normalizer

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Pre-compiled patterns, built once at package init.
var (
	reBrackets     = regexp.MustCompile(`\([^)]*\)`)
	reCopyMarkers  = regexp.MustCompile(`(?i)[_\-\s]?(copy|new|final|old|backup)[_\-\s]?\d*\s*$`)
	reTrailingNums = regexp.MustCompile(`[_\-]\d{1,3}\s*$`)
	reNoise        = regexp.MustCompile(`[_\s.\-]`)
)

const cacheSize = 8192

// cache is a bounded LRU cache of normalized filenames, guarded by a mutex
// since lru.Cache itself is not concurrency-safe and Normalize may be
// called from more than one goroutine.
var cache = struct {
	mu sync.Mutex
	c  *lru.Cache
}{c: lru.New(cacheSize)}

// Normalize canonicalizes filename for fuzzy duplicate grouping.
func Normalize(filename string) string {
	if filename == "" {
		return ""
	}

	cache.mu.Lock()
	if v, ok := cache.c.Get(filename); ok {
		cache.mu.Unlock()
		return v.(string)
	}
	cache.mu.Unlock()

	result := normalizeUncached(filename)

	cache.mu.Lock()
	cache.c.Add(filename, result)
	cache.mu.Unlock()

	return result
}

func normalizeUncached(filename string) string {
	lower := strings.ToLower(filename)
	ext := filepath.Ext(lower)
	name := strings.TrimSuffix(lower, ext)

	name = reBrackets.ReplaceAllString(name, "")
	name = reCopyMarkers.ReplaceAllString(name, "")
	name = reTrailingNums.ReplaceAllString(name, "")
	name = reNoise.ReplaceAllString(name, "")

	return name + ext
}
