package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"structura/internal/diag"
	"structura/internal/emit"
	"structura/internal/project"
	"structura/internal/version"
)

// Current schema version - increment when CachedOutput changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результат компиляции файла по хешу содержимого и опций.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedOutput is the msgpack payload of one cache entry.
type CachedOutput struct {
	Schema uint16
	Path   string
	Hash   project.Digest
	Output string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &CacheError{Op: "open", Err: err}
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &CacheError{Op: "open", Err: err}
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

// CacheKey derives the entry key from file content and everything that
// changes the emitted text.
func CacheKey(content project.Digest, opts emit.Options) project.Digest {
	return project.Combine(content,
		version.Version,
		opts.RuntimePath,
		opts.RuntimeName,
		strconv.FormatBool(opts.Wrap),
	)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "out", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes an entry.
func (c *DiskCache) Put(key project.Digest, payload *CachedOutput) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	payload.Hash = key
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return &CacheError{Op: "put", Err: err}
	}
	if err = f.Close(); err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	// атомарная замена
	if err = os.Rename(f.Name(), p); err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	return nil
}

// Get reads an entry. Entries written by another schema are misses.
func (c *DiskCache) Get(key project.Digest) (*CachedOutput, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &CacheError{Op: "get", Err: err}
	}
	defer f.Close()

	var out CachedOutput
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, &CacheError{Op: "get", Err: err}
	}
	if out.Schema != diskCacheSchemaVersion || out.Hash != key {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "out")); err != nil {
		return &CacheError{Op: "drop", Err: err}
	}
	return nil
}

// CacheError reports a cache I/O or decoding failure. Builds treat it as a
// warning and fall back to compiling.
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string { return fmt.Sprintf("cache %s: %v", e.Op, e.Err) }

func (e *CacheError) Unwrap() error { return e.Err }

func (e *CacheError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(diag.IOCacheError, 0, sourceless, e.Error())
	d.Severity = diag.SevWarning
	return d
}
