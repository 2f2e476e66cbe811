// Package testutil provides filesystem fixtures and failure injection shared
// by the installer's package tests.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Gitmaxd/ai-init/internal/platform"
)

// WriteTree creates files under root from a map of slash-separated relative
// paths to contents.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
}

// Snapshot returns every regular file and symlink under root keyed by its
// slash-separated relative path. Symlinks map to "-> target".
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(p)
			if err != nil {
				return err
			}
			out[rel] = "-> " + target
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot of %s: %v", root, err)
	}
	return out
}

// Keys returns the sorted keys of a snapshot.
func Keys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FaultFS wraps a platform.FS and fails selected operations. A nil hook means
// the operation passes through; a hook returning nil also passes through.
type FaultFS struct {
	platform.FS

	FailMkdir   func(path string) error
	FailOpen    func(path string) error
	FailWrite   func(path string) error
	FailSymlink func(path string) error
}

// NewFaultFS wraps the host filesystem.
func NewFaultFS() *FaultFS {
	return &FaultFS{FS: platform.OSFS{}}
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if f.FailMkdir != nil {
		if err := f.FailMkdir(path); err != nil {
			return err
		}
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) OpenFile(name string, flag int, perm fs.FileMode) (platform.File, error) {
	if f.FailOpen != nil {
		if err := f.FailOpen(name); err != nil {
			return nil, err
		}
	}
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	if f.FailWrite != nil {
		if werr := f.FailWrite(name); werr != nil {
			return &failingFile{File: file, err: werr}, nil
		}
	}
	return file, nil
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if f.FailSymlink != nil {
		if err := f.FailSymlink(newname); err != nil {
			return err
		}
	}
	return f.FS.Symlink(oldname, newname)
}

type failingFile struct {
	platform.File
	err error
}

func (f *failingFile) Write([]byte) (int, error) { return 0, f.err }
