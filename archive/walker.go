// Package archive reads named entries from OOXML containers (zip archives)
// on top of "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// DocumentEntry is the main document part of a WordprocessingML package.
const DocumentEntry = "word/document.xml"

// ErrEntryNotFound is returned by ReadEntry when archive has no such entry.
var ErrEntryNotFound = errors.New("entry not found in archive")

// errStop is used by walk functions to end walking early without an error.
var errStop = errors.New("stop walking")

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the archive whose names start with prefix, calling
// walkFn for each item in central directory order. Entries with path traversal
// components ("..") or absolute paths are skipped.
func Walk(archive, prefix string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) || f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ReadEntry returns full content of the archive entry with exact name.
// Archive is opened, read and closed before function returns.
func ReadEntry(archive, name string) ([]byte, error) {
	var (
		data  []byte
		found bool
	)
	err := Walk(archive, name, func(_ string, f *zip.File) error {
		if f.FileHeader.Name != name {
			return nil
		}
		found = true

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %q: %w", name, err)
		}
		defer rc.Close()

		if data, err = io.ReadAll(rc); err != nil {
			return fmt.Errorf("unable to read %q: %w", name, err)
		}
		return errStop
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
