// Package docusaurus is the build-output materialization layer of a
// static-site pipeline. It decides whether generated artifacts need to be
// written to disk, derives stable chunk names for code-split bundles, and
// resolves permalinks back to emitted HTML files.
package docusaurus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Mutaz-Awad/docusaurus/internal/archive"
	"github.com/Mutaz-Awad/docusaurus/internal/config"
	"github.com/Mutaz-Awad/docusaurus/internal/digeststore"
	"github.com/Mutaz-Awad/docusaurus/internal/emitpool"
	"github.com/Mutaz-Awad/docusaurus/pkg/chunknamer"
	"github.com/Mutaz-Awad/docusaurus/pkg/outputpath"
	"github.com/Mutaz-Awad/docusaurus/pkg/writecache"
)

var (
	ErrNotStarted = errors.New("docusaurus: build session not started")
	ErrClosed     = errors.New("docusaurus: build session closed")
)

// Config configures a build session.
type Config struct {
	// OutDir is the absolute output directory artifacts are emitted under.
	OutDir string
	// TrailingSlash is the site-wide output layout; the zero value means
	// unknown and makes the resolver probe both layouts.
	TrailingSlash outputpath.TrailingSlash
	// CacheDir, when set, enables the persistent digest store so warm
	// digests survive process restarts. Empty disables it.
	CacheDir string
	// MinimumFreeGB is a free-space threshold checked before the
	// persistent digest store opens. Ignored when CacheDir is empty.
	MinimumFreeGB int
	// Workers sizes the emission worker pool. Zero picks a default.
	Workers int
	// Logger is an optional structured logger. If nil, a stderr logger is
	// used.
	Logger *logrus.Logger
}

// Artifact is one generated file scheduled for batch emission.
type Artifact struct {
	RelPath string
	Content []byte
	Policy  writecache.CachePolicy
}

// BuildSession owns the write cache, the chunk namer and their lifecycle.
// Construct one per build session and pass it by handle; the indices inside
// it live exactly as long as the session.
type BuildSession struct {
	log    *logrus.Logger
	config Config

	cache *writecache.WriteCache
	namer *chunknamer.ChunkNamer
	store *digeststore.Store
	pool  *emitpool.Pool

	started   atomic.Bool
	closed    atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once
}

// New constructs a session handle. New does not touch the disk; call Start.
func New(conf Config) (*BuildSession, error) {
	if conf.OutDir == "" {
		return nil, fmt.Errorf("docusaurus: OutDir must not be empty")
	}
	if conf.Logger == nil {
		conf.Logger = logrus.New()
	}
	return &BuildSession{
		log:    conf.Logger,
		config: conf,
	}, nil
}

// NewFromConfigFile constructs a session from a YAML build configuration.
func NewFromConfigFile(path string) (*BuildSession, error) {
	fileConf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(Config{
		OutDir:        fileConf.OutDir,
		TrailingSlash: fileConf.TrailingSlashMode(),
		CacheDir:      fileConf.CacheDir,
		MinimumFreeGB: fileConf.MinimumFreeGB,
		Workers:       fileConf.Workers,
	})
}

// Start opens the optional persistent digest store and initializes the
// cache, namer and worker pool. Safe to call multiple times; only the first
// call has effect.
func (s *BuildSession) Start() error {
	var startErr error
	s.startOnce.Do(func() {
		var backend writecache.DigestBackend
		if s.config.CacheDir != "" {
			store, err := digeststore.NewStore(digeststore.StoreConfig{
				Path:          s.config.CacheDir,
				MinimumFreeGB: s.config.MinimumFreeGB,
				Logger:        s.log,
			})
			if err != nil {
				startErr = fmt.Errorf("init digest store: %w", err)
				return
			}
			s.store = store
			backend = store
		}

		s.cache = writecache.NewWriteCache(writecache.Config{
			Backend: backend,
			Logger:  s.log,
		})
		s.namer = chunknamer.New()
		s.pool = emitpool.NewPool(emitpool.Config{WorkerCount: s.config.Workers})

		s.started.Store(true)
		s.log.WithField("outDir", s.config.OutDir).Info("build session started")
	})
	return startErr
}

func (s *BuildSession) ready() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !s.started.Load() {
		return ErrNotStarted
	}
	return nil
}

// Cache returns the session's write cache.
func (s *BuildSession) Cache() *writecache.WriteCache {
	return s.cache
}

// Namer returns the session's chunk namer.
func (s *BuildSession) Namer() *chunknamer.ChunkNamer {
	return s.namer
}

// Generate emits one artifact under the session's output directory.
func (s *BuildSession) Generate(relPath string, content []byte, policy writecache.CachePolicy) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.cache.Generate(s.config.OutDir, relPath, content, policy)
}

// GenerateAll emits a batch of artifacts in parallel through the worker
// pool. Same-path serialization is handled inside the write cache, so the
// batch may safely contain duplicate paths. Returns all failures joined.
func (s *BuildSession) GenerateAll(artifacts []Artifact) error {
	if err := s.ready(); err != nil {
		return err
	}

	room := s.pool.CreateRoom(len(artifacts))
	for _, a := range artifacts {
		a := a
		room.Submit(func() error {
			return s.cache.Generate(s.config.OutDir, a.RelPath, a.Content, a.Policy)
		})
	}

	if errs := room.Wait(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// GenChunkName returns the stable chunk name for modulePath.
func (s *BuildSession) GenChunkName(modulePath string, opts chunknamer.Options) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.namer.GenChunkName(modulePath, opts), nil
}

// ReadOutputHTMLFile resolves a permalink against the session's output
// directory and trailing-slash setting and returns the emitted bytes.
func (s *BuildSession) ReadOutputHTMLFile(permalink string) ([]byte, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return outputpath.ReadOutputHTMLFile(permalink, s.config.OutDir, s.config.TrailingSlash)
}

// Snapshot archives the current output directory into w.
func (s *BuildSession) Snapshot(w io.Writer) error {
	if err := s.ready(); err != nil {
		return err
	}
	return archive.Snapshot(s.config.OutDir, w)
}

// Close stops the worker pool and closes the persistent digest store. Safe
// to call multiple times; only the first call has effect.
func (s *BuildSession) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.pool != nil {
			s.pool.Close()
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				closeErr = fmt.Errorf("close digest store: %w", err)
			}
		}
	})
	return closeErr
}
