// Package writecache decides whether a generated build artifact actually
// needs to hit the disk. It keeps a process-lifetime index of path → content
// digest and skips the write when the digest of the incoming content matches
// the last content this process knows to be on disk.
//
// The index may be stale relative to out-of-process filesystem mutations;
// that is part of the contract. An optional persistent backend lets warm
// digests survive process restarts for incremental builds.
package writecache

import (
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Mutaz-Awad/docusaurus/internal/env"
	"github.com/Mutaz-Awad/docusaurus/internal/fsutil"
	"github.com/Mutaz-Awad/docusaurus/pkg/hashing"
)

// CachePolicy selects how Generate treats the digest index for one call.
type CachePolicy int

const (
	// PolicyDefault skips the cache in production builds and uses it
	// otherwise.
	PolicyDefault CachePolicy = iota
	// PolicyUse consults the digest index and writes only on change.
	PolicyUse
	// PolicySkip writes unconditionally.
	PolicySkip
)

// DigestBackend is an optional persistent layer under the in-memory index.
// Lookup misses return ok=false with a nil error.
type DigestBackend interface {
	Lookup(path string) (digest string, ok bool, err error)
	Store(path string, digest string) error
}

// Config configures a WriteCache.
type Config struct {
	// Backend optionally persists digests across processes. Nil disables it.
	Backend DigestBackend
	// Logger is an optional structured logger. If nil, a default is used.
	Logger *logrus.Logger
}

// WriteCache is safe for concurrent use. Writes to distinct paths proceed in
// parallel; calls for the same path are serialized.
type WriteCache struct {
	mu      sync.Mutex
	digests map[string]string
	locks   map[string]*sync.Mutex

	backend DigestBackend
	log     *logrus.Logger
}

// NewWriteCache creates an empty cache.
func NewWriteCache(config Config) *WriteCache {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &WriteCache{
		digests: make(map[string]string),
		locks:   make(map[string]*sync.Mutex),
		backend: config.Backend,
		log:     config.Logger,
	}
}

// Generate materializes content at filepath.Join(baseDir, relativeFile).
// The joined path is the cache key for this and all future calls on the
// same logical file. Any filesystem failure is returned verbatim.
func (c *WriteCache) Generate(baseDir, relativeFile string, content []byte, policy CachePolicy) error {
	path := filepath.Join(baseDir, relativeFile)

	unlock := c.lockPath(path)
	defer unlock()

	if c.skipCache(policy) {
		return c.forceWrite(path, content)
	}

	lastDigest, ok, err := c.warmDigest(path)
	if err != nil {
		return err
	}

	currentDigest := hashing.Digest(content)
	if ok && currentDigest == lastDigest {
		c.log.WithField("path", path).Debug("write cache hit, skipping write")
		return nil
	}

	if err := fsutil.OutputFile(path, content); err != nil {
		return err
	}
	c.setDigest(path, currentDigest)
	if c.backend != nil {
		if err := c.backend.Store(path, currentDigest); err != nil {
			return err
		}
	}
	return nil
}

// forceWrite writes unconditionally. It refreshes existing index entries
// (in memory and in the backend) but never creates one: registering a
// forced write for an unknown path would let a later cached call skip
// content the cache has never tracked.
func (c *WriteCache) forceWrite(path string, content []byte) error {
	if err := fsutil.OutputFile(path, content); err != nil {
		return err
	}

	c.mu.Lock()
	_, known := c.digests[path]
	var digest string
	if known {
		digest = hashing.Digest(content)
		c.digests[path] = digest
	}
	c.mu.Unlock()

	if c.backend == nil {
		return nil
	}
	if !known {
		// The backend may still carry an entry from an earlier process;
		// leaving it untouched would pin a digest the disk no longer has.
		_, found, err := c.backend.Lookup(path)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		digest = hashing.Digest(content)
	}
	return c.backend.Store(path, digest)
}

// warmDigest returns the indexed digest for path, filling the in-memory
// index from the persistent backend or from the bytes already on disk when
// a fresh process sees the path for the first time.
func (c *WriteCache) warmDigest(path string) (string, bool, error) {
	c.mu.Lock()
	digest, ok := c.digests[path]
	c.mu.Unlock()
	if ok {
		return digest, true, nil
	}

	if c.backend != nil {
		persisted, found, err := c.backend.Lookup(path)
		if err != nil {
			return "", false, err
		}
		// A persisted digest only counts while its file is still on disk;
		// otherwise a matching digest would skip a write the disk needs.
		if found && fsutil.PathExists(path) {
			c.setDigest(path, persisted)
			return persisted, true, nil
		}
	}

	if !fsutil.PathExists(path) {
		return "", false, nil
	}
	existing, err := fsutil.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	digest = hashing.Digest(existing)
	c.setDigest(path, digest)
	return digest, true, nil
}

func (c *WriteCache) setDigest(path, digest string) {
	c.mu.Lock()
	c.digests[path] = digest
	c.mu.Unlock()
}

// lockPath serializes calls for one logical file while leaving other paths
// free to write in parallel. Lock entries live for the process, same as the
// digest index.
func (c *WriteCache) lockPath(path string) func() {
	c.mu.Lock()
	l, ok := c.locks[path]
	if !ok {
		l = &sync.Mutex{}
		c.locks[path] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (c *WriteCache) skipCache(policy CachePolicy) bool {
	switch policy {
	case PolicySkip:
		return true
	case PolicyUse:
		return false
	default:
		return env.IsProduction()
	}
}
