package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchema меняется при любом изменении DiskPayload.
const cacheSchema uint16 = 1

// Key is the SHA-256 of an expression's canonical text ("lhs op rhs").
type Key [32]byte

func KeyFor(canonical string) Key {
	return sha256.Sum256([]byte(canonical))
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// DiskPayload is one cached evaluation. Output is empty for failures.
type DiskPayload struct {
	Schema  uint16 `msgpack:"v"`
	Expr    string `msgpack:"expr"`
	Output  string `msgpack:"out,omitempty"`
	Stage   uint8  `msgpack:"stage"`
	Message string `msgpack:"msg,omitempty"` // без префикса стадии
}

// DiskCache keeps evaluated expressions on disk, one msgpack file per key.
// A nil *DiskCache is a cache that never hits.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache uses the per-user cache directory, honouring XDG_CACHE_HOME.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return NewDiskCache(filepath.Join(base, app))
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) resultsDir() string { return filepath.Join(c.dir, "results") }

// entryPath shards by the first key byte: results/ab/abcdef....mp
func (c *DiskCache) entryPath(key Key) string {
	name := key.String()
	return filepath.Join(c.resultsDir(), name[:2], name+".mp")
}

// Put stores payload under key. The file appears atomically.
func (c *DiskCache) Put(key Key, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = cacheSchema
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return writeFileAtomic(c.entryPath(key), data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err = errors.Join(werr, cerr); err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

// Get fills out and reports a hit. Missing entries and entries written with a
// different schema are misses, not errors.
func (c *DiskCache) Get(key Key, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return out.Schema == cacheSchema, nil
}

// DropAll removes every entry; the cache stays usable.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.resultsDir()); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
