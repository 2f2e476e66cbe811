package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Gitmaxd/ai-init/internal/platform"
)

// DefaultConcurrency is the number of copies in flight when none is set.
const DefaultConcurrency = 8

// Outcome is what happened to one planned file.
type Outcome string

const (
	OutcomeCopied  Outcome = "copied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// FileResult is the outcome of copying one plan entry.
type FileResult struct {
	Entry   Entry
	Outcome Outcome
	Err     error
}

// Report holds one result per plan entry, in plan order.
type Report struct {
	Results []FileResult
}

// Copied returns the relative paths that were written.
func (r *Report) Copied() []string { return r.rels(OutcomeCopied) }

// Skipped returns the relative paths left alone because they already existed.
func (r *Report) Skipped() []string { return r.rels(OutcomeSkipped) }

// Failed returns the entries that could not be written.
func (r *Report) Failed() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) rels(o Outcome) []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == o {
			out = append(out, res.Entry.Rel)
		}
	}
	return out
}

// CopyOptions controls a batch copy.
type CopyOptions struct {
	// Preserve leaves existing destination files untouched.
	Preserve bool

	// Concurrency caps copies in flight; zero means DefaultConcurrency and
	// one copies sequentially.
	Concurrency int

	// FS is the destination filesystem; nil means the host filesystem.
	FS platform.FS

	// Trace, when set, receives one event per file.
	Trace func(msg string, keyvals ...any)
}

// CopyAll copies every plan entry from src. Parent directories must already
// exist (see EnsureDirectories). Failures are recorded per entry and never
// stop the batch; once ctx is done no further copies start and the remaining
// entries are reported as failed with ctx's error.
func CopyAll(ctx context.Context, src fs.FS, plan []Entry, opts CopyOptions) *Report {
	fsys := opts.FS
	if fsys == nil {
		fsys = platform.OSFS{}
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	trace := opts.Trace
	if trace == nil {
		trace = func(string, ...any) {}
	}

	results := make([]FileResult, len(plan))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, e := range plan {
		results[i].Entry = e

		if err := ctx.Err(); err != nil {
			results[i].Outcome = OutcomeFailed
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			copied, err := CopyFile(src, e.Src, fsys, e.Dst, opts.Preserve)
			switch {
			case err != nil:
				results[i].Outcome = OutcomeFailed
				results[i].Err = err
				trace("copy failed", "path", e.Rel, "err", err)
			case copied:
				results[i].Outcome = OutcomeCopied
				trace("copied", "path", e.Rel)
			default:
				results[i].Outcome = OutcomeSkipped
				trace("skipped", "path", e.Rel, "reason", "exists")
			}
			return nil
		})
	}
	_ = g.Wait()

	return &Report{Results: results}
}

// CopyFile copies srcPath from src to dst. With preserve set, an existing dst
// (including a dangling symlink) is left alone and CopyFile returns false.
// The destination is opened exclusively in that mode, so a file that appears
// between the check and the write is not clobbered either.
func CopyFile(src fs.FS, srcPath string, fsys platform.FS, dst string, preserve bool) (bool, error) {
	if preserve {
		exists, err := platform.Exists(fsys, dst)
		if err != nil {
			return false, fmt.Errorf("checking %s: %w", dst, err)
		}
		if exists {
			return false, nil
		}
	}

	if err := fsys.MkdirAll(filepath.Dir(dst), platform.DirPerm); err != nil {
		return false, fmt.Errorf("creating parent of %s: %w", dst, err)
	}

	in, err := src.Open(srcPath)
	if err != nil {
		return false, fmt.Errorf("opening template %s: %w", srcPath, err)
	}
	defer in.Close()

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if preserve {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	out, err := fsys.OpenFile(dst, flag, platform.FilePerm)
	if err != nil {
		if preserve && errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fsys.Remove(dst)
		return false, fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dst)
		return false, fmt.Errorf("closing %s: %w", dst, err)
	}
	return true, nil
}
