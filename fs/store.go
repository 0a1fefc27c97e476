// Package fs writes encoded trees to a directory on disk.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/htmltree"
)

// SourceToPath converts an input source to a relative output path with the
// given extension. URLs map to host and path, stdin ("-") to "stdin", and
// file paths to their cleaned path with the extension replaced.
//
// Example: https://example.com/docs/api → example.com/docs/api.json
func SourceToPath(source, ext string) (string, error) {
	if source == "-" || source == "" {
		return "stdin" + ext, nil
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", htmltree.Errorf(htmltree.EINVALID, "invalid URL %q", source)
		}
		path := strings.TrimPrefix(u.Path, "/")
		if path == "" || strings.HasSuffix(path, "/") {
			path += "index"
		}
		return filepath.Join(u.Host, filepath.FromSlash(path)) + ext, nil
	}

	// Rooting the path before cleaning drops any leading "..".
	clean := strings.TrimPrefix(filepath.Clean(string(filepath.Separator)+source), string(filepath.Separator))
	if clean == "" {
		return "", htmltree.Errorf(htmltree.EINVALID, "invalid source path %q", source)
	}
	return strings.TrimSuffix(clean, filepath.Ext(clean)) + ext, nil
}

// TreeStore writes encoded trees into baseDir/name.tmp and moves them to
// baseDir/name on Commit. Nothing else below baseDir is modified.
type TreeStore struct {
	baseDir string
	name    string
	encoder htmltree.Encoder
	ext     string
}

// NewTreeStore creates a TreeStore writing files with extension ext, each
// holding one tree encoded with enc.
func NewTreeStore(baseDir, name string, enc htmltree.Encoder, ext string) *TreeStore {
	return &TreeStore{
		baseDir: baseDir,
		name:    name,
		encoder: enc,
		ext:     ext,
	}
}

func (s *TreeStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *TreeStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save encodes tree into the file derived from source. It returns the path
// the tree will have after Commit.
func (s *TreeStore) Save(ctx context.Context, source string, tree *htmltree.Tree) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.validateName(); err != nil {
		return "", err
	}

	relPath, err := SourceToPath(source, s.ext)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	if err := s.encoder.Encode(f, tree); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filepath.Join(s.finalDir(), relPath), nil
}

// Commit replaces baseDir/name with everything saved so far.
func (s *TreeStore) Commit() error {
	if err := s.validateName(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// validateName rejects names that would place the store outside baseDir or
// make it baseDir itself.
func (s *TreeStore) validateName() error {
	if s.name == "" || s.name == "." || s.name == ".." || strings.ContainsAny(s.name, `/\`) {
		return htmltree.Errorf(htmltree.EINVALID, "invalid store name %q", s.name)
	}
	return nil
}

// Abort discards everything saved so far.
func (s *TreeStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
