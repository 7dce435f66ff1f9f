// Package chunknamer derives stable bundler chunk ids from module paths.
//
// Names are memoized per process with first-call-wins semantics: whatever
// options the first call for a module path used, every later call returns
// the same string. That precedence rule is deliberate and is made explicit
// through getOrInsert rather than hidden in call order.
package chunknamer

import (
	"sync"

	"github.com/Mutaz-Awad/docusaurus/internal/env"
	"github.com/Mutaz-Awad/docusaurus/pkg/hashing"
)

const (
	shortNameLength    = 8
	preferredSuffixLen = 3
	prefixSeparator    = "---"
	rootChunkName      = "index"
)

// IDMode selects the shape of a generated chunk name.
type IDMode int

const (
	// IDModeDefault resolves to short ids in production builds and
	// readable ids otherwise.
	IDModeDefault IDMode = iota
	// IDModeShort produces an opaque 8-char hash of the module path.
	// Prefix and PreferredName are ignored in this mode.
	IDModeShort
	// IDModeReadable produces a human-readable identifier.
	IDModeReadable
)

// Options are naming hints. They only matter on the first call for a given
// module path.
type Options struct {
	Prefix        string
	PreferredName string
	Mode          IDMode
}

// ChunkNamer memoizes chunk names per module path. Safe for concurrent use.
type ChunkNamer struct {
	mu    sync.Mutex
	names map[string]string
}

// New returns an empty namer.
func New() *ChunkNamer {
	return &ChunkNamer{names: make(map[string]string)}
}

// GenChunkName returns the chunk name for modulePath. The module path is
// used verbatim as the memoization key, no normalization.
func (n *ChunkNamer) GenChunkName(modulePath string, opts Options) string {
	return n.getOrInsert(modulePath, func() string {
		return computeName(modulePath, opts)
	})
}

// getOrInsert returns the memoized name for key, computing and storing it
// on first sight. The compute runs under the lock so two concurrent first
// calls cannot race to different names.
func (n *ChunkNamer) getOrInsert(key string, compute func() string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if name, ok := n.names[key]; ok {
		return name
	}
	name := compute()
	n.names[key] = name
	return name
}

func computeName(modulePath string, opts Options) string {
	if shortID(opts.Mode) {
		return hashing.ShortHash(modulePath, shortNameLength)
	}

	base := modulePath
	if opts.PreferredName != "" {
		base = opts.PreferredName + hashing.ShortHash(modulePath, preferredSuffixLen)
	}

	core := rootChunkName
	if base != "/" {
		core = hashing.LongHash(base)
	}

	if opts.Prefix != "" {
		return opts.Prefix + prefixSeparator + core
	}
	return core
}

func shortID(mode IDMode) bool {
	switch mode {
	case IDModeShort:
		return true
	case IDModeReadable:
		return false
	default:
		return env.IsProduction()
	}
}
