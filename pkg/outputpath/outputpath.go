// Package outputpath locates the physical HTML file a logical permalink was
// emitted to. A permalink maps to exactly two candidate layouts: a
// directory holding index.html, or a flat .html file next to its siblings.
// Which one exists depends on the site-wide trailing-slash setting.
package outputpath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Mutaz-Awad/docusaurus/internal/fsutil"
)

// ErrOutputNotFound is returned when no candidate file exists for a
// permalink and the trailing-slash mode is unknown. Callers treat it as a
// build invariant violation: a published permalink must resolve to an
// emitted file.
var ErrOutputNotFound = errors.New("outputpath: no emitted file for permalink")

// TrailingSlash is the site-wide output layout setting.
type TrailingSlash int

const (
	// TrailingSlashUnknown probes both layouts, directory-with-index first.
	TrailingSlashUnknown TrailingSlash = iota
	// TrailingSlashAlways means every page is emitted as <permalink>/index.html.
	TrailingSlashAlways
	// TrailingSlashNever means every page is emitted as <permalink>.html.
	TrailingSlashNever
)

// ReadOutputHTMLFile reads the emitted HTML file for permalink under outDir.
// With a known mode the chosen candidate is read directly and a missing
// file surfaces as the read error, not as ErrOutputNotFound.
func ReadOutputHTMLFile(permalink, outDir string, mode TrailingSlash) ([]byte, error) {
	withIndex := filepath.Join(outDir, permalink, "index.html")
	flat := filepath.Join(outDir, strings.TrimSuffix(permalink, "/")+".html")

	switch mode {
	case TrailingSlashAlways:
		return fsutil.ReadFile(withIndex)
	case TrailingSlashNever:
		return fsutil.ReadFile(flat)
	case TrailingSlashUnknown:
		if fsutil.PathExists(withIndex) {
			return fsutil.ReadFile(withIndex)
		}
		if fsutil.PathExists(flat) {
			return fsutil.ReadFile(flat)
		}
		return nil, fmt.Errorf("%w: expected file at %s", ErrOutputNotFound, withIndex)
	default:
		return nil, fmt.Errorf("outputpath: invalid trailing slash mode %d", mode)
	}
}
