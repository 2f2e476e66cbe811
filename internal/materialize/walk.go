package materialize

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/Gitmaxd/ai-init/internal/templates"
)

// MaxDepth bounds directory recursion, including through followed symlinks.
const MaxDepth = 32

// ListFiles returns every regular file under root as a slash-separated path
// relative to root, sorted lexicographically. Symlinked files and directories
// are followed; a directory link that resolves to one of its own ancestors is
// skipped instead of recursed into.
func ListFiles(root templates.Root) ([]string, error) {
	if root.IsZero() {
		return nil, fmt.Errorf("no template filesystem configured")
	}

	w := &walker{root: root, active: make(map[string]bool)}
	if _, err := fs.ReadDir(root.FS, "."); err != nil {
		return nil, fmt.Errorf("reading template root %s: %w", root, err)
	}
	if leave, ok := w.enter("."); ok {
		defer leave()
	}
	if err := w.walk(".", 0); err != nil {
		return nil, err
	}

	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	root   templates.Root
	active map[string]bool // resolved directories on the current descent path
	files  []string
}

func (w *walker) walk(dir string, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("template tree exceeds %d levels at %s", MaxDepth, dir)
	}

	entries, err := fs.ReadDir(w.root.FS, dir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	for _, e := range entries {
		p := path.Join(dir, e.Name())

		switch {
		case e.IsDir():
			if err := w.descend(p, depth+1); err != nil {
				return err
			}

		case e.Type()&fs.ModeSymlink != 0:
			info, err := fs.Stat(w.root.FS, p)
			if err != nil {
				// Dangling link: nothing to copy.
				continue
			}
			if info.IsDir() {
				if err := w.descend(p, depth+1); err != nil {
					return err
				}
			} else if info.Mode().IsRegular() {
				w.files = append(w.files, p)
			}

		case e.Type().IsRegular():
			w.files = append(w.files, p)
		}
	}
	return nil
}

func (w *walker) descend(p string, depth int) error {
	leave, ok := w.enter(p)
	if !ok {
		return nil
	}
	defer leave()
	return w.walk(p, depth)
}

// enter pushes a directory onto the descent path and reports false when its
// real path is already there. Only trees on disk can be resolved to real
// paths; embedded trees cannot hold links and rely on MaxDepth alone.
func (w *walker) enter(p string) (leave func(), ok bool) {
	if !w.root.OnDisk() {
		return func() {}, true
	}
	resolved, err := filepath.EvalSymlinks(filepath.Join(w.root.Dir, filepath.FromSlash(p)))
	if err != nil {
		return nil, false
	}
	if w.active[resolved] {
		return nil, false
	}
	w.active[resolved] = true
	return func() { delete(w.active, resolved) }, true
}
