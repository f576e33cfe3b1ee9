// Package cache keeps generated files on disk between runs, keyed by the
// declaration they were generated for and the hash of every input.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Current schema version; increment when Payload changes.
const schemaVersion uint16 = 1

// Cache is a directory of msgpack payloads. It is safe for concurrent use. A
// nil *Cache misses every lookup and ignores every write.
type Cache struct {
	mu      sync.RWMutex
	dir     string
	version string
	log     *zap.Logger
}

// Payload is one cached file.
type Payload struct {
	Schema uint16
	// Version of the generator that produced Content.
	Version string
	Key     string
	Hash    string
	Content []byte
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used to report unreadable entries.
func WithLogger(log *zap.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// WithVersion invalidates entries written by another generator version.
func WithVersion(v string) Option {
	return func(c *Cache) { c.version = v }
}

// Open creates the cache directory if needed.
func Open(dir string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{dir: dir, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// DefaultDir is the per-user cache directory of app.
func DefaultDir(app string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, app), nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, "units", hex.EncodeToString(sum[:])+".mp")
}

// Get returns the content stored for key when it was stored with hash.
// Unreadable entries count as misses.
func (c *Cache) Get(key, hash string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var payload Payload
	if err := c.read(c.pathFor(key), &payload); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn("dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		}

		return nil, false
	}

	if payload.Schema != schemaVersion || payload.Version != c.version || payload.Key != key || payload.Hash != hash {
		return nil, false
	}

	return payload.Content, true
}

func (c *Cache) read(p string, out *Payload) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	return msgpack.NewDecoder(f).Decode(out)
}

// Put stores content for key and hash, replacing any previous entry
// atomically.
func (c *Cache) Put(key, hash string, content []byte) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	err = msgpack.NewEncoder(f).Encode(&Payload{
		Schema:  schemaVersion,
		Version: c.version,
		Key:     key,
		Hash:    hash,
		Content: content,
	})
	if err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	return os.RemoveAll(old)
}
