// Package archive packs model directories and detects archive formats.
//
// Purpose:
//
//	Build the tar/gzip archive uploaded when installing a model from a
//	directory, and classify paths as directory, ZIP or tar/gzip for the
//	install dispatch. Packed entries are owner-normalized so archives do not
//	leak local user information.
//
// Dependencies:
//   - archive/tar, compress/gzip: Archive encoding
package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Kind classifies an installable path.
type Kind int

const (
	KindUnknown Kind = iota
	KindDirectory
	KindZip
	KindTar
)

const manifestName = "manifest.json"

var (
	zipMagic  = []byte{'P', 'K'}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Detect classifies the path as a directory, ZIP file or tar/gzip file.
func Detect(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return KindUnknown, err
	}
	if info.IsDir() {
		return KindDirectory, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	magic := make([]byte, 2)
	if _, err := io.ReadFull(f, magic); err != nil {
		return KindUnknown, nil
	}

	switch {
	case bytes.Equal(magic, zipMagic):
		return KindZip, nil
	case bytes.Equal(magic, gzipMagic):
		return KindTar, nil
	}

	// Plain tar has no leading magic; the ustar marker sits at offset 257.
	marker := make([]byte, 5)
	if _, err := f.ReadAt(marker, 257); err == nil && string(marker) == "ustar" {
		return KindTar, nil
	}

	return KindUnknown, nil
}

// PackOptions configures PackDirectory.
type PackOptions struct {
	// Manifest is the raw content of a manifest.json to write into the
	// archive, replacing any manifest.json at the directory root.
	Manifest []byte

	// IncludeHidden includes files with a dot-prefixed path segment.
	IncludeHidden bool

	// OnFile, if set, is invoked with the archive-relative path of each
	// packed file.
	OnFile func(relPath string)
}

// PackDirectory writes a tar/gzip archive of the regular files under dir to
// w. Entry owners are normalized to root (uid/gid 0). Hidden files are
// skipped unless opts.IncludeHidden is set. When opts.Manifest is non-nil it
// is written as manifest.json, replacing any root-level manifest.json in the
// directory.
func PackDirectory(w io.Writer, dir string, opts PackOptions) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if !opts.IncludeHidden && IsHidden(rel) {
			continue
		}
		if opts.Manifest != nil && rel == manifestName {
			continue
		}

		if err := packFile(tw, path, rel); err != nil {
			return err
		}
		if opts.OnFile != nil {
			opts.OnFile(rel)
		}
	}

	if opts.Manifest != nil {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     manifestName,
			Size:     int64(len(opts.Manifest)),
			Mode:     0o664,
			ModTime:  time.Now(),
			Uname:    "root",
			Gname:    "root",
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write manifest header: %w", err)
		}
		if _, err := tw.Write(opts.Manifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar writer: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}
	return nil
}

func packFile(tw *tar.Writer, path, rel string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("header for %s: %w", rel, err)
	}
	hdr.Name = rel

	// Strip user info from entries.
	hdr.Uid = 0
	hdr.Gid = 0
	hdr.Uname = "root"
	hdr.Gname = "root"

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header for %s: %w", rel, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// IsHidden reports whether any segment of the slash-separated relative path
// is dot-prefixed.
func IsHidden(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
