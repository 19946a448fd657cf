package analyzer

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
)

// BlocklistLoader loads a newline-delimited denylist into an exact-match set.
type BlocklistLoader interface {
	Load(path string) (map[string]struct{}, error)
}

// FileBlocklistLoader reads the file on every call. Entries match exactly:
// UTF-8, one password per line, blank lines ignored, no case folding, no
// trimming beyond the line terminator.
type FileBlocklistLoader struct{}

func (FileBlocklistLoader) Load(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blocklist: %w", err)
	}
	defer f.Close()

	blocked := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			blocked[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blocklist: %w", err)
	}

	return blocked, nil
}

// CachedBlocklistLoader memoizes loaded sets per path with an expiration, for
// callers that run many analyses against the same denylist (the HTTP
// service). Edits to the file become visible after the TTL.
type CachedBlocklistLoader struct {
	inner BlocklistLoader
	cache *cache.Cache
}

func NewCachedBlocklistLoader(inner BlocklistLoader, ttl time.Duration) *CachedBlocklistLoader {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedBlocklistLoader{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (l *CachedBlocklistLoader) Load(path string) (map[string]struct{}, error) {
	if cached, ok := l.cache.Get(path); ok {
		return cached.(map[string]struct{}), nil
	}

	blocked, err := l.inner.Load(path)
	if err != nil {
		return nil, err
	}

	l.cache.Set(path, blocked, cache.DefaultExpiration)
	return blocked, nil
}
