package linker

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Gitmaxd/ai-init/internal/platform"
)

// Status is the outcome of linking one alias.
type Status string

const (
	StatusLinked        Status = "linked"
	StatusCopied        Status = "copied"
	StatusSkipped       Status = "skipped"
	StatusSkippedExists Status = "skipped-exists"
	StatusFailed        Status = "failed"
)

// Result reports what happened to one alias.
type Result struct {
	Alias  string
	Status Status
	Err    error
}

// Backend creates a single alias pointing at canonical. Both arguments are
// absolute paths and alias is known not to exist.
type Backend interface {
	Name() string
	Create(canonical, alias string) (Status, error)
}

// SymlinkBackend creates relative symlinks and falls back to a copy when the
// link is refused.
type SymlinkBackend struct {
	FS platform.FS
}

func (SymlinkBackend) Name() string { return "symlink" }

func (b SymlinkBackend) Create(canonical, alias string) (Status, error) {
	target, err := filepath.Rel(filepath.Dir(alias), canonical)
	if err != nil {
		target = canonical
	}
	linkErr := b.FS.Symlink(target, alias)
	if linkErr == nil {
		return StatusLinked, nil
	}
	if err := platform.CopyFile(b.FS, canonical, alias); err != nil {
		return StatusFailed, errors.Join(
			fmt.Errorf("symlink: %w", linkErr),
			fmt.Errorf("copy: %w", err),
		)
	}
	return StatusCopied, nil
}

// CopyBackend writes a copy of canonical's current content.
type CopyBackend struct {
	FS platform.FS
}

func (CopyBackend) Name() string { return "copy" }

func (b CopyBackend) Create(canonical, alias string) (Status, error) {
	if err := platform.CopyFile(b.FS, canonical, alias); err != nil {
		return StatusFailed, err
	}
	return StatusCopied, nil
}

// Select probes dir and returns the symlink backend when links can be
// created there, otherwise the copy backend.
func Select(fsys platform.FS, dir string) Backend {
	if platform.SymlinkSupported(fsys, dir) {
		return SymlinkBackend{FS: fsys}
	}
	return CopyBackend{FS: fsys}
}

// LinkAliases creates every alias under root that does not already exist.
// Nothing is created when canonical is missing, and an existing alias is
// never replaced. Failures are reported per alias and never abort the rest.
func LinkAliases(fsys platform.FS, root, canonical string, aliases []string, backend Backend) []Result {
	results := make([]Result, 0, len(aliases))
	src := filepath.Join(root, canonical)

	haveCanonical, err := regularFile(fsys, src)
	for _, alias := range aliases {
		res := Result{Alias: alias}
		dst := filepath.Join(root, alias)

		switch {
		case err != nil:
			res.Status, res.Err = StatusFailed, err
		case !haveCanonical:
			res.Status = StatusSkipped
		default:
			exists, xerr := platform.Exists(fsys, dst)
			switch {
			case xerr != nil:
				res.Status, res.Err = StatusFailed, xerr
			case exists:
				res.Status = StatusSkippedExists
			default:
				res.Status, res.Err = backend.Create(src, dst)
			}
		}
		results = append(results, res)
	}
	return results
}

func regularFile(fsys platform.FS, p string) (bool, error) {
	info, err := fsys.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		// includes a dangling canonical link
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// State describes an alias found on disk.
type State string

const (
	StateLinked    State = "linked"
	StateIdentical State = "identical copy"
	StateDrifted   State = "drifted"
	StateMissing   State = "missing"
)

// Inspect reports how alias under root relates to canonical. A symlink that
// resolves to canonical is linked; a regular file with the same bytes is an
// identical copy; anything else present is drifted.
func Inspect(fsys platform.FS, root, canonical, alias string) (State, error) {
	dst := filepath.Join(root, alias)
	info, err := fsys.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return StateMissing, nil
	}
	if err != nil {
		return "", err
	}

	src := filepath.Join(root, canonical)
	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := fsys.Readlink(dst)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(dst), target)
		}
		if filepath.Clean(target) == filepath.Clean(src) {
			return StateLinked, nil
		}
		return StateDrifted, nil
	}

	want, err := fsys.ReadFile(src)
	if err != nil {
		return StateDrifted, nil
	}
	got, err := fsys.ReadFile(dst)
	if err != nil {
		return "", err
	}
	if bytes.Equal(want, got) {
		return StateIdentical, nil
	}
	return StateDrifted, nil
}
