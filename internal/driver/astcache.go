package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"decay/internal/ast"
	"decay/internal/source"
)

// astSchema versions cacheEntry and the ast layout. It is hashed into
// every key, so bumping it orphans old entries.
const astSchema uint16 = 2

// ASTCache keeps successfully parsed programs on disk, keyed by the hash of
// the normalized source. Entries live in <dir>/ast/<2 hex>/<hex>.mp.
type ASTCache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema  uint16       `msgpack:"schema"`
	Path    string       `msgpack:"path"`
	Stored  int64        `msgpack:"stored"` // unix seconds
	Program *ast.Program `msgpack:"program"`
}

// OpenASTCache uses $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenASTCache(app string) (*ASTCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenASTCacheAt(filepath.Join(base, app))
}

func OpenASTCacheAt(dir string) (*ASTCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "ast"), 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &ASTCache{dir: dir}, nil
}

func (c *ASTCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func entryKey(contentHash [32]byte) string {
	var buf [2 + 32]byte
	binary.BigEndian.PutUint16(buf[:2], astSchema)
	copy(buf[2:], contentHash[:])
	sum := sha256.Sum256(buf[:])
	return hex.EncodeToString(sum[:])
}

func (c *ASTCache) entryPath(f *source.File) string {
	key := entryKey(f.Hash)
	return filepath.Join(c.dir, "ast", key[:2], key+".mp")
}

// Load returns the cached program for f. A missing entry, an entry of
// another schema and a nil cache are all plain misses; undecodable bytes
// are an error.
func (c *ASTCache) Load(f *source.File) (*ast.Program, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.entryPath(f))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	var e cacheEntry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", filepath.Base(c.entryPath(f)), err)
	}
	if e.Schema != astSchema || e.Program == nil {
		return nil, false, nil
	}
	return e.Program, true, nil
}

// Store writes prog for f through a temp file and a rename, so readers
// never see a partial entry.
func (c *ASTCache) Store(f *source.File, display string, prog *ast.Program) error {
	if c == nil || prog == nil {
		return nil
	}
	raw, err := msgpack.Marshal(cacheEntry{Schema: astSchema, Path: display, Stored: time.Now().Unix(), Program: prog})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	dst := c.entryPath(f)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // после Rename файла уже нет
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Purge drops every entry. The tree is renamed away first so a concurrent
// process never reads a half-deleted directory.
func (c *ASTCache) Purge() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	root := filepath.Join(c.dir, "ast")
	trash := root + ".purge-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.Rename(root, trash); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.RemoveAll(trash); err != nil {
		return err
	}
	return os.MkdirAll(root, 0o755)
}
