package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// CacheEntryTTL is the default time-to-live for a cached heavy-transformer
// result before it is eligible for GC (spec.md §4.G: "default 24h").
const CacheEntryTTL = 24 * time.Hour

// Cache is a content-addressed, on-disk cache for heavy transformer results
// (spec.md §4.G). Concurrent computations for the same key are collapsed
// into one in-flight call via singleflight (spec.md §5).
type Cache struct {
	dir    string
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCache creates a Cache rooted at dir, creating it if necessary.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = CacheEntryTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating %s: %w", dir, err)
	}
	return &Cache{dir: dir, ttl: ttl, logger: slog.Default().With("component", "transform-cache")}, nil
}

// Key computes the cache key for a heavy transformer invocation (spec.md
// §4.G: sha256(transformer.name || transformer.version || file_sha256 ||
// options_json)).
func Key(transformerName, transformerVersion string, fileSHA256 [32]byte, options map[string]any) (string, error) {
	optsJSON, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("cache: marshalling options: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(transformerName))
	h.Write([]byte(transformerVersion))
	h.Write(fileSHA256[:])
	h.Write(optsJSON)
	return hex.EncodeToString(h.Sum(nil)), nil
}

type cacheEnvelope struct {
	StoredAt time.Time `json:"stored_at"`
	Value    []byte    `json:"value"`
}

// Get returns the cached bytes for key, or (nil, false) on a miss or
// expired entry. Cache read failures are non-fatal: they are logged and
// treated as a miss (spec.md §4.G "cache failures are non-fatal").
func (c *Cache) Get(key string) ([]byte, bool) {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Debug("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Debug("cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	if time.Since(env.StoredAt) > c.ttl {
		return nil, false
	}
	return env.Value, true
}

// Put writes value under key, using an atomic temp-file-then-rename to
// avoid partial writes being observed by concurrent readers (spec.md
// §4.G). Write failures are logged and swallowed.
func (c *Cache) Put(key string, value []byte) {
	env := cacheEnvelope{StoredAt: time.Now(), Value: value}
	data, err := json.Marshal(env)
	if err != nil {
		c.logger.Debug("cache marshal failed", "key", key, "error", err)
		return
	}

	tmp := filepath.Join(c.dir, uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		c.logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	if err := os.Rename(tmp, c.path(key)); err != nil {
		c.logger.Debug("cache rename failed", "key", key, "error", err)
		os.Remove(tmp)
	}
}

// Compute returns the cached value for key if present, otherwise calls fn
// exactly once even under concurrent callers for the same key (spec.md §5
// "Concurrent identical keys collapse to one computation"), writing the
// result through on success.
func (c *Cache) Compute(key string, fn func() ([]byte, error)) ([]byte, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		result, err := fn()
		if err != nil {
			return nil, err
		}
		c.Put(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// GC removes entries older than the cache's TTL. Intended to run
// periodically from a background goroutine owned by the caller (spec.md
// §4.G: "a periodic GC sweep").
func (c *Cache) GC() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("cache: gc readdir %s: %w", c.dir, err)
	}

	now := time.Now()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		var env cacheEnvelope
		decodeErr := json.NewDecoder(f).Decode(&env)
		f.Close()
		if decodeErr != nil {
			if decodeErr != io.EOF {
				os.Remove(path)
			}
			continue
		}
		if now.Sub(env.StoredAt) > c.ttl {
			os.Remove(path)
		}
	}
	return nil
}
