package materialize

import (
	"fmt"

	"github.com/Gitmaxd/ai-init/internal/platform"
)

// DirError reports a directory that could not be created.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("creating directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// EnsureDirectories creates each slash-separated directory under root,
// shallowest first. Existing directories are left alone. The first failure
// stops the run and is returned as a *DirError.
func EnsureDirectories(fsys platform.FS, root string, dirs []string) error {
	ordered := dedupe(dirs)
	sortShallowFirst(ordered)

	for _, rel := range ordered {
		abs, err := SafeJoin(root, rel)
		if err != nil {
			return &DirError{Path: rel, Err: err}
		}
		if info, err := fsys.Stat(abs); err == nil {
			if info.IsDir() {
				continue
			}
			return &DirError{Path: abs, Err: fmt.Errorf("path exists and is not a directory")}
		}
		if err := fsys.MkdirAll(abs, platform.DirPerm); err != nil {
			return &DirError{Path: abs, Err: err}
		}
	}
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || s == "." || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
