// Package archive turns a finished build output directory into a single
// lzma-compressed tar snapshot, and restores one. Snapshots are deployment
// and rollback artifacts; nothing on the build hot path depends on them.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz/lzma"

	"github.com/Mutaz-Awad/docusaurus/internal/fsutil"
)

// Snapshot writes every regular file under outDir into w as a compressed
// tar stream. Entry names are slash-separated paths relative to outDir.
func Snapshot(outDir string, w io.Writer) error {
	lz, err := lzma.NewWriter(w)
	if err != nil {
		return fmt.Errorf("error creating lzma writer: %w", err)
	}
	tw := tar.NewWriter(lz)

	err = filepath.Walk(outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(outDir, path)
		if err != nil {
			return err
		}

		header := &tar.Header{
			Name: filepath.ToSlash(rel),
			Mode: 0o644,
			Size: info.Size(),
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		f.Close()
		return err
	})
	if err != nil {
		return fmt.Errorf("error archiving %s: %w", outDir, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("error finalizing archive: %w", err)
	}
	if err := lz.Close(); err != nil {
		return fmt.Errorf("error finalizing compression: %w", err)
	}
	return nil
}

// Restore unpacks a snapshot produced by Snapshot into destDir, creating
// parent directories as needed.
func Restore(r io.Reader, destDir string) error {
	lz, err := lzma.NewReader(r)
	if err != nil {
		return fmt.Errorf("error creating lzma reader: %w", err)
	}
	tr := tar.NewReader(lz)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading archive entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("error reading archive entry %s: %w", header.Name, err)
		}
		if err := fsutil.OutputFile(filepath.Join(destDir, filepath.FromSlash(header.Name)), content); err != nil {
			return fmt.Errorf("error restoring %s: %w", header.Name, err)
		}
	}
}
